package issue_checkin_token

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// IssueForAppointmentRequest запрос токена прибытия для записи
type IssueForAppointmentRequest struct {
	AppointmentID int64
	CustomerID    int64
}

// IssueForWalkInRequest запрос токена прибытия для walk-in очереди
type IssueForWalkInRequest struct {
	SalonID int64
}

// IssueTokenResponse выданный токен
type IssueTokenResponse struct {
	Token *domain.CheckInToken
}
