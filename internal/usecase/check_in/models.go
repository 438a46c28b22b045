package check_in

import "time"

// CheckInRequest предъявление токена прибытия
type CheckInRequest struct {
	Token string
}

// CheckInResponse результат регистрации прибытия
type CheckInResponse struct {
	Token         string
	SalonID       int64
	AppointmentID *int64 // nil для walk-in токенов
	WalkIn        bool
	CheckedInAt   time.Time
}
