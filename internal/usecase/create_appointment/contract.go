package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
)

// AppointmentRepo интерфейс репозитория записей
type AppointmentRepo interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRequestRepo интерфейс репозитория заявок на изменение графика
type ScheduleRequestRepo interface {
	GetApprovedForStaffOnDate(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.ScheduleRequest, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetService(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error)
	GetStaff(ctx context.Context, staffID int64) (*salonservice.Staff, error)
	ListSalonStaff(ctx context.Context, salonID int64) ([]*salonservice.Staff, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	// DoSerializable выполняет fn в транзакции с уровнем изоляции Serializable
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
