package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req CreateAppointmentRequest) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerId must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceId is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long, max %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateStart проверяет дату и время начала относительно текущего момента
func validateStart(start, now time.Time, advanceBookingDays, minNoticeMinutes int) error {
	today := truncateToDay(now)
	day := truncateToDay(start)

	if day.Before(today) {
		return ErrDateInPast
	}

	horizon := today.AddDate(0, 0, advanceBookingDays)
	if day.After(horizon) {
		return fmt.Errorf("%w: max %d days ahead", ErrDateTooFar, advanceBookingDays)
	}

	earliest := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if start.Before(earliest) {
		return fmt.Errorf("%w: min notice %d minutes", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
