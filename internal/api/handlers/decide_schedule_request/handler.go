package decide_schedule_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDecision    = "некорректное решение, ожидается approved или denied"
	msgRequestNotFound    = "заявка не найдена"
	msgAlreadyDecided     = "решение по заявке уже принято"
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

// Handle PATCH /api/v1/schedule-requests/{requestId}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /schedule-requests/{id}/decision - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req models.DecideScheduleRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /schedule-requests/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Decide(r.Context(), requestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrRequestNotFound):
			h.logger.Warn("PATCH /schedule-requests/{id}/decision - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, schedule.ErrAlreadyDecided):
			h.logger.Warn("PATCH /schedule-requests/{id}/decision - Already decided: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyDecided)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PATCH /schedule-requests/{id}/decision - Invalid decision: request_id=%d, decision=%s",
				requestID, req.Decision)
			handlers.RespondBadRequest(w, msgInvalidDecision)

		default:
			h.logger.Error("PATCH /schedule-requests/{id}/decision - Failed to decide: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedule-requests/{id}/decision - Decided: request_id=%d, decision=%s",
		requestID, req.Decision)
	handlers.RespondJSON(w, http.StatusOK, result)
}
