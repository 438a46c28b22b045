package find_nearest_salon

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	findNearestSalon "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_nearest_salon"
)

// FindNearestSalonRequest HTTP request model
type FindNearestSalonRequest struct {
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	ServiceIDs    []int64  `json:"serviceIds"`
	RadiusKm      *float64 `json:"radiusKm,omitempty"`
	WithinMinutes *int     `json:"withinMinutes,omitempty"`
}

// MatchedSlot модель подобранного слота
type MatchedSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	StaffID         *int64 `json:"staffId,omitempty"`
}

// FindNearestSalonResponse HTTP response model
type FindNearestSalonResponse struct {
	SalonID    int64       `json:"salonId"`
	SalonName  string      `json:"salonName"`
	DistanceKm float64     `json:"distanceKm"`
	Date       string      `json:"date"`
	Slot       MatchedSlot `json:"slot"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *FindNearestSalonRequest) ToUseCaseRequest() findNearestSalon.FindNearestSalonRequest {
	return findNearestSalon.FindNearestSalonRequest{
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		ServiceIDs:    r.ServiceIDs,
		RadiusKm:      r.RadiusKm,
		WithinMinutes: r.WithinMinutes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findNearestSalon.FindNearestSalonResponse) *FindNearestSalonResponse {
	return &FindNearestSalonResponse{
		SalonID:    resp.SalonID,
		SalonName:  resp.SalonName,
		DistanceKm: resp.DistanceKm,
		Date:       resp.Date.Format(domain.DateFormat),
		Slot: MatchedSlot{
			StartTime:       resp.Slot.StartTime.String(),
			DurationMinutes: resp.Slot.DurationMinutes,
			StaffID:         resp.Slot.StaffID,
		},
	}
}
