package issue_checkin_token

import (
	"time"

	issueToken "github.com/m04kA/SMC-SchedulingService/internal/usecase/issue_checkin_token"
)

// TokenResponse HTTP response model
type TokenResponse struct {
	Token         string `json:"token"`
	SalonID       int64  `json:"salonId"`
	AppointmentID *int64 `json:"appointmentId,omitempty"`
	WalkInRef     *string `json:"walkInRef,omitempty"`
	ExpiresAt     string `json:"expiresAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *issueToken.IssueTokenResponse) *TokenResponse {
	token := resp.Token

	out := &TokenResponse{
		Token:         token.Token,
		SalonID:       token.SalonID,
		AppointmentID: token.AppointmentID,
		ExpiresAt:     token.ExpiresAt.Format(time.RFC3339),
	}

	if token.WalkInRef != nil {
		ref := token.WalkInRef.String()
		out.WalkInRef = &ref
	}

	return out
}
