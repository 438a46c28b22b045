package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateAppointmentRequest запрос на бронирование слота
type CreateAppointmentRequest struct {
	CustomerID int64
	SalonID    int64
	ServiceIDs []int64
	StaffID    *int64
	Date       time.Time
	StartTime  types.TimeString
	Notes      *string
}

// CreateAppointmentResponse созданная запись
type CreateAppointmentResponse struct {
	Appointment *domain.Appointment
}
