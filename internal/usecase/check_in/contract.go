package check_in

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// TokenRepo интерфейс репозитория токенов прибытия
type TokenRepo interface {
	// GetByToken внутри транзакции блокирует строку токена (FOR UPDATE)
	GetByToken(ctx context.Context, code string) (*domain.CheckInToken, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TokenStatus, checkedInAt *time.Time) error
}

// AppointmentRepo интерфейс репозитория записей
type AppointmentRepo interface {
	SetCheckedIn(ctx context.Context, id int64, at time.Time) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
