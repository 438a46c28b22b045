package cancel_appointment

import (
	"time"

	cancelAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_appointment"
)

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	AppointmentID    int64   `json:"appointmentId"`
	Status           string  `json:"status"`
	CancellationType string  `json:"cancellationType"` // early | late | no_show
	CancellationFee  float64 `json:"cancellationFee"`
	CancelledAt      string  `json:"cancelledAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.CancelAppointmentResponse) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		AppointmentID:    resp.AppointmentID,
		Status:           "cancelled",
		CancellationType: string(resp.CancellationType),
		CancellationFee:  resp.CancellationFee,
		CancelledAt:      resp.CancelledAt.Format(time.RFC3339),
	}
}
