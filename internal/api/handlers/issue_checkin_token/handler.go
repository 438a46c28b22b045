package issue_checkin_token

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	issueToken "github.com/m04kA/SMC-SchedulingService/internal/usecase/issue_checkin_token"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidSalonID       = "некорректный ID салона"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgAppointmentNotFound  = "запись не найдена"
	msgAppointmentNotActive = "запись завершена или отменена"
	msgForbidden            = "доступ запрещен"
	msgTokenGeneration      = "не удалось сгенерировать токен, попробуйте ещё раз"
)

type Handler struct {
	useCase IssueCheckinTokenUseCase
	logger  Logger
}

func NewHandler(useCase IssueCheckinTokenUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleForAppointment POST /api/v1/appointments/{appointmentId}/checkin-token
func (h *Handler) HandleForAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/checkin-token - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/checkin-token - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.ExecuteForAppointment(r.Context(), issueToken.IssueForAppointmentRequest{
		AppointmentID: appointmentID,
		CustomerID:    customerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, issueToken.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/checkin-token - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, issueToken.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/checkin-token - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, issueToken.ErrAppointmentNotActive):
			h.logger.Warn("POST /appointments/{id}/checkin-token - Appointment not active: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgAppointmentNotActive)

		case errors.Is(err, issueToken.ErrTokenGeneration):
			h.logger.Error("POST /appointments/{id}/checkin-token - Token generation failed: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTokenGeneration)

		case errors.Is(err, issueToken.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/checkin-token - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("POST /appointments/{id}/checkin-token - Failed to issue token: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments/{id}/checkin-token - Token issued: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// HandleForWalkIn POST /api/v1/salons/{salonId}/walkin-token
// Выдаёт токен для walk-in клиента без предварительной записи
func (h *Handler) HandleForWalkIn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/walkin-token - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.useCase.ExecuteForWalkIn(r.Context(), issueToken.IssueForWalkInRequest{
		SalonID: salonID,
	})
	if err != nil {
		switch {
		case errors.Is(err, issueToken.ErrTokenGeneration):
			h.logger.Error("POST /salons/{id}/walkin-token - Token generation failed: salon_id=%d", salonID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTokenGeneration)

		case errors.Is(err, issueToken.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/walkin-token - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSalonID)

		default:
			h.logger.Error("POST /salons/{id}/walkin-token - Failed to issue token: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /salons/{id}/walkin-token - Walk-in token issued: salon_id=%d", salonID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
