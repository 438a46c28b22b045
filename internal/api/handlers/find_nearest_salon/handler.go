package find_nearest_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	findNearestSalon "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_nearest_salon"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры поиска"
	msgNoAvailability     = "в радиусе поиска нет салона со свободным слотом"
)

type Handler struct {
	useCase FindNearestSalonUseCase
	logger  Logger
}

func NewHandler(useCase FindNearestSalonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/nearest
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req FindNearestSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/nearest - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, findNearestSalon.ErrNoAvailabilityFound):
			h.logger.Info("POST /salons/nearest - No availability: lat=%.4f, lon=%.4f", req.Latitude, req.Longitude)
			handlers.RespondNotFound(w, msgNoAvailability)

		case errors.Is(err, findNearestSalon.ErrInvalidInput):
			h.logger.Warn("POST /salons/nearest - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /salons/nearest - Failed to find salon: lat=%.4f, lon=%.4f, error=%v",
				req.Latitude, req.Longitude, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /salons/nearest - Salon matched: salon_id=%d, distance_km=%.2f, slot=%s",
		response.SalonID, response.DistanceKm, response.Slot.StartTime)
	handlers.RespondJSON(w, http.StatusOK, response)
}
