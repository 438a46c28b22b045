package find_nearest_salon

import (
	"context"

	findNearestSalon "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_nearest_salon"
)

type FindNearestSalonUseCase interface {
	Execute(ctx context.Context, req findNearestSalon.FindNearestSalonRequest) (*findNearestSalon.FindNearestSalonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
