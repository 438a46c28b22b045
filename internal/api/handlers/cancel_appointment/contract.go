package cancel_appointment

import (
	"context"

	cancelAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_appointment"
)

type CancelAppointmentUseCase interface {
	Execute(ctx context.Context, req cancelAppointment.CancelAppointmentRequest) (*cancelAppointment.CancelAppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
