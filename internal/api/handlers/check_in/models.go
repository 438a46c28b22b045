package check_in

import (
	"time"

	checkIn "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_in"
)

// CheckInRequest HTTP request model
type CheckInRequest struct {
	Token string `json:"token"`
}

// CheckInResponse HTTP response model
type CheckInResponse struct {
	Token         string `json:"token"`
	SalonID       int64  `json:"salonId"`
	AppointmentID *int64 `json:"appointmentId,omitempty"`
	WalkIn        bool   `json:"walkIn"`
	CheckedInAt   string `json:"checkedInAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.CheckInResponse) *CheckInResponse {
	return &CheckInResponse{
		Token:         resp.Token,
		SalonID:       resp.SalonID,
		AppointmentID: resp.AppointmentID,
		WalkIn:        resp.WalkIn,
		CheckedInAt:   resp.CheckedInAt.Format(time.RFC3339),
	}
}
