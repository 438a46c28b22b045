package decide_schedule_request

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	Decide(ctx context.Context, requestID int64, req *models.DecideScheduleRequestRequest) (*models.ScheduleRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
