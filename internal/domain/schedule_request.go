package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ScheduleRequestStatus статус заявки мастера на изменение графика
type ScheduleRequestStatus string

const (
	RequestPending  ScheduleRequestStatus = "pending"
	RequestApproved ScheduleRequestStatus = "approved"
	RequestDenied   ScheduleRequestStatus = "denied"
)

// ScheduleRequestType тип заявки
type ScheduleRequestType string

const (
	RequestLeave       ScheduleRequestType = "leave"
	RequestShiftChange ScheduleRequestType = "shift_change"
)

// ScheduleRequest заявка мастера на отпуск или изменение смены
// Календарь учитывает только заявки в статусе approved
type ScheduleRequest struct {
	ID      int64
	StaffID int64
	SalonID int64

	StartDate time.Time
	EndDate   time.Time

	// Пустые значения = весь рабочий день; иначе блокируется только указанный интервал
	StartTime types.TimeString
	EndTime   types.TimeString

	Type   ScheduleRequestType
	Status ScheduleRequestStatus
	Reason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoversDate возвращает true, если заявка затрагивает указанную дату
func (r *ScheduleRequest) CoversDate(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(truncateToDay(r.StartDate)) && !day.After(truncateToDay(r.EndDate))
}

// IsFullDay возвращает true, если заявка блокирует весь рабочий день
func (r *ScheduleRequest) IsFullDay() bool {
	return r.StartTime.IsZero() || r.EndTime.IsZero()
}

// BlockedInterval возвращает занятый интервал на указанную дату
// Для заявок на весь день блокируется workDay - рабочий интервал мастера
func (r *ScheduleRequest) BlockedInterval(workDay TimeInterval) TimeInterval {
	if r.IsFullDay() {
		return workDay
	}
	return TimeInterval{Start: r.StartTime, End: r.EndTime}
}

// OverlapsRequest возвращает true, если заявки пересекаются по датам и времени
// Инвариант: отпускные интервалы одного мастера никогда не пересекаются
func (r *ScheduleRequest) OverlapsRequest(other *ScheduleRequest) bool {
	if truncateToDay(r.EndDate).Before(truncateToDay(other.StartDate)) ||
		truncateToDay(other.EndDate).Before(truncateToDay(r.StartDate)) {
		return false
	}

	// Даты пересекаются; заявки на весь день конфликтуют с любыми
	if r.IsFullDay() || other.IsFullDay() {
		return true
	}

	a := TimeInterval{Start: r.StartTime, End: r.EndTime}
	b := TimeInterval{Start: other.StartTime, End: other.EndTime}
	return a.Overlaps(b)
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
