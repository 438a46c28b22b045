package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetBySalonWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRequestRepository интерфейс репозитория заявок на изменение графика
type ScheduleRequestRepository interface {
	GetApprovedForStaffOnDate(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.ScheduleRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
