package find_nearest_salon

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	ListApprovedSalons(ctx context.Context) ([]*salonservice.Salon, error)
}

// SlotsProvider интерфейс расчёта свободных слотов салона
type SlotsProvider interface {
	Execute(ctx context.Context, req get_available_slots.GetAvailableSlotsRequest) (*get_available_slots.GetAvailableSlotsResponse, error)
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
