package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AppointmentStatus статус записи на услуги
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusRejected  AppointmentStatus = "rejected"
)

// IsValid возвращает true для известного статуса записи
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// CancellationType категория отмены по близости к времени начала
type CancellationType string

const (
	CancellationNone   CancellationType = "none"
	CancellationEarly  CancellationType = "early"
	CancellationLate   CancellationType = "late"
	CancellationNoShow CancellationType = "no_show"
)

// Appointment запись клиента на услуги салона
type Appointment struct {
	ID         int64
	CustomerID int64
	SalonID    int64
	StaffID    *int64 // nil до назначения мастера (first-fit при бронировании)

	// Денормализованный состав услуг на момент бронирования
	Services ServiceLines

	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int // Сумма длительностей услуг

	Status           AppointmentStatus
	CancellationType CancellationType
	CancellationFee  float64
	FinalAmount      float64

	Notes       *string
	CheckedInAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает время окончания записи (start + суммарная длительность)
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// Interval возвращает занимаемый интервал [start, end)
func (a *Appointment) Interval() (TimeInterval, error) {
	end, err := a.EndTime()
	if err != nil {
		return TimeInterval{}, err
	}
	return TimeInterval{Start: a.StartTime, End: end}, nil
}

// OccupiesCalendar возвращает true, если запись занимает время в календаре
func (a *Appointment) OccupiesCalendar() bool {
	return a.Status != StatusCancelled && a.Status != StatusRejected
}

// CanBeCancelled возвращает true, если запись можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusApproved
}

// IsTerminal возвращает true для конечных статусов
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusRejected
}

// HasCheckedIn возвращает true, если клиент зарегистрировал прибытие
func (a *Appointment) HasCheckedIn() bool {
	return a.CheckedInAt != nil
}

// CanTransitionTo проверяет допустимость перехода статуса
// pending -> approved | rejected | cancelled
// approved -> completed | cancelled
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCancelled
	case StatusApproved:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// StaffAppointmentsFilter фильтр для выборки записей по мастеру/салону
type StaffAppointmentsFilter struct {
	SalonID         int64      // Обязательный параметр
	StaffIDs        []int64    // Фильтр по мастерам (пусто - все мастера салона)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *AppointmentStatus
	IncludeInactive bool // Включать ли отменённые и отклонённые записи
}
