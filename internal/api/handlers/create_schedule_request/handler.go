package create_schedule_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры заявки"
	msgStaffNotFound      = "мастер не найден"
	msgStaffNotInSalon    = "мастер не работает в этом салоне"
	msgOverlappingRequest = "заявка пересекается с другой активной заявкой"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScheduleRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRequest(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /schedule-requests - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrStaffNotInSalon):
			h.logger.Warn("POST /schedule-requests - Staff not in salon: staff_id=%d, salon_id=%d",
				req.StaffID, req.SalonID)
			handlers.RespondBadRequest(w, msgStaffNotInSalon)

		case errors.Is(err, schedule.ErrOverlappingRequest):
			h.logger.Warn("POST /schedule-requests - Overlapping request: staff_id=%d", req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgOverlappingRequest)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /schedule-requests - Invalid input: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /schedule-requests - Failed to create request: staff_id=%d, error=%v",
				req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule-requests - Request created: request_id=%d, staff_id=%d", result.ID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
