package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// GetAvailableSlotsRequest запрос свободных слотов
type GetAvailableSlotsRequest struct {
	SalonID    int64
	ServiceIDs []int64
	StaffID    *int64
	Date       time.Time
}

// GetAvailableSlotsResponse список свободных слотов на дату
type GetAvailableSlotsResponse struct {
	SalonID         int64
	Date            time.Time
	DurationMinutes int
	Slots           []domain.AvailableSlot
}
