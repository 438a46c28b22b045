package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
)

// CalendarService интерфейс календаря занятости мастеров
type CalendarService interface {
	// StaffOccupancy возвращает занятые интервалы каждого мастера на дату
	StaffOccupancy(ctx context.Context, salonID int64, staffIDs []int64, date time.Time) (map[int64][]domain.TimeInterval, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetService(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error)
	GetStaff(ctx context.Context, staffID int64) (*salonservice.Staff, error)
	ListSalonStaff(ctx context.Context, salonID int64) ([]*salonservice.Staff, error)
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
