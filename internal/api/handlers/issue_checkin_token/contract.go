package issue_checkin_token

import (
	"context"

	issueToken "github.com/m04kA/SMC-SchedulingService/internal/usecase/issue_checkin_token"
)

type IssueCheckinTokenUseCase interface {
	ExecuteForAppointment(ctx context.Context, req issueToken.IssueForAppointmentRequest) (*issueToken.IssueTokenResponse, error)
	ExecuteForWalkIn(ctx context.Context, req issueToken.IssueForWalkInRequest) (*issueToken.IssueTokenResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
