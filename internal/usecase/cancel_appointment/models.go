package cancel_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	AppointmentID int64
	CustomerID    int64
}

// CancelAppointmentResponse результат отмены с классификацией и штрафом
type CancelAppointmentResponse struct {
	AppointmentID    int64
	CancellationType domain.CancellationType
	CancellationFee  float64
	CancelledAt      time.Time
}
