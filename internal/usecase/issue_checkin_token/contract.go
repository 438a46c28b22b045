package issue_checkin_token

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// TokenRepo интерфейс репозитория токенов прибытия
type TokenRepo interface {
	Create(ctx context.Context, token *domain.CheckInToken) (*domain.CheckInToken, error)
	GetActiveByAppointment(ctx context.Context, appointmentID int64) (*domain.CheckInToken, error)
}

// AppointmentRepo интерфейс репозитория записей
type AppointmentRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
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
