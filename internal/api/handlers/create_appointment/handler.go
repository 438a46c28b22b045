package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotConflict        = "выбранный временной слот уже занят"
	msgSalonNotFound       = "салон не найден"
	msgSalonNotApproved    = "салон не прошёл модерацию"
	msgServiceNotFound     = "услуга не найдена"
	msgStaffNotFound       = "мастер не найден"
	msgStaffNotInSalon     = "мастер не работает в этом салоне"
	msgStaffCannotPerform  = "мастер не выполняет выбранную услугу"
	msgOutsideWorkingHours = "слот выходит за рамки рабочих часов салона"
	msgDateInPast          = "дата записи в прошлом"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для записи на этот слот"
	msgInvalidInput        = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: customer_id=%d, salon_id=%d", customerID, req.SalonID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("POST /appointments - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrSalonNotApproved):
			h.logger.Warn("POST /appointments - Salon not approved: salon_id=%d", req.SalonID)
			handlers.RespondError(w, http.StatusConflict, msgSalonNotApproved)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotInSalon):
			h.logger.Warn("POST /appointments - Staff not in salon: salon_id=%d", req.SalonID)
			handlers.RespondBadRequest(w, msgStaffNotInSalon)

		case errors.Is(err, createAppointment.ErrStaffCannotPerform):
			h.logger.Warn("POST /appointments - Staff cannot perform service: salon_id=%d", req.SalonID)
			handlers.RespondBadRequest(w, msgStaffCannotPerform)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: salon_id=%d", req.SalonID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - Date in past: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrDateTooFar):
			h.logger.Warn("POST /appointments - Date too far: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, salon_id=%d, error=%v",
				customerID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, customer_id=%d, salon_id=%d",
		response.ID, customerID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
