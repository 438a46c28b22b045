package find_nearest_salon

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// FindNearestSalonRequest запрос срочного подбора салона ("panic mode")
type FindNearestSalonRequest struct {
	Latitude   float64
	Longitude  float64
	ServiceIDs []int64

	// nil - значения по умолчанию из конфигурации
	RadiusKm      *float64
	WithinMinutes *int
}

// FindNearestSalonResponse ближайший салон со свободным слотом в окне
type FindNearestSalonResponse struct {
	SalonID    int64
	SalonName  string
	DistanceKm float64
	Date       time.Time
	Slot       domain.AvailableSlot
}
