package schedule

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
)

// ScheduleRequestRepository интерфейс репозитория заявок на изменение графика
type ScheduleRequestRepository interface {
	Create(ctx context.Context, req *domain.ScheduleRequest) (*domain.ScheduleRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleRequest, error)
	GetActiveByStaff(ctx context.Context, staffID int64) ([]*domain.ScheduleRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ScheduleRequestStatus) error
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetStaff(ctx context.Context, staffID int64) (*salonservice.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
