package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgMissingServiceIDs  = "параметр serviceIds обязателен"
	msgInvalidServiceIDs  = "некорректный список ID услуг"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSalonNotFound      = "салон не найден"
	msgSalonNotApproved   = "салон не прошёл модерацию"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgStaffNotInSalon    = "мастер не работает в этом салоне"
	msgStaffCannotPerform = "мастер не выполняет выбранную услугу"
	msgDateInPast         = "дата в прошлом"
	msgDateTooFar         = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-slots
// Query params: serviceIds (required, "1,2"), date (required, YYYY-MM-DD), staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	serviceIDsStr := r.URL.Query().Get("serviceIds")
	if serviceIDsStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing service IDs")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	staffIDStr := r.URL.Query().Get("staffId")

	if _, err := time.Parse(domain.DateFormat, dateStr); err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonID, serviceIDsStr, dateStr, staffIDStr)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailableSlots.ErrSalonNotApproved):
			h.logger.Warn("GET /salons/{id}/available-slots - Salon not approved: salon_id=%d", salonID)
			handlers.RespondError(w, http.StatusConflict, msgSalonNotApproved)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Service not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /salons/{id}/available-slots - Staff not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotInSalon):
			h.logger.Warn("GET /salons/{id}/available-slots - Staff not in salon: salon_id=%d", salonID)
			handlers.RespondBadRequest(w, msgStaffNotInSalon)

		case errors.Is(err, getAvailableSlots.ErrStaffCannotPerform):
			h.logger.Warn("GET /salons/{id}/available-slots - Staff cannot perform service: salon_id=%d", salonID)
			handlers.RespondBadRequest(w, msgStaffCannotPerform)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /salons/{id}/available-slots - Date in past: salon_id=%d, date=%s", salonID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFar):
			h.logger.Warn("GET /salons/{id}/available-slots - Date too far: salon_id=%d, date=%s", salonID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/available-slots - Invalid input: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceIDs)

		default:
			h.logger.Error("GET /salons/{id}/available-slots - Failed to get slots: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/available-slots - Slots retrieved: salon_id=%d, date=%s, slots_count=%d",
		salonID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
