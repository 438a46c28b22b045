package create_appointment

import (
	"context"

	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

type CreateAppointmentUseCase interface {
	Execute(ctx context.Context, req createAppointment.CreateAppointmentRequest) (*createAppointment.CreateAppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
