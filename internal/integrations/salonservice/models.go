package salonservice

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ApprovalStatus статус модерации салона
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Coordinates географические координаты салона
// У части салонов координаты отсутствуют (геокодинг - внешняя забота),
// такие салоны исключаются из поиска ближайших
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime *string `json:"close_time,omitempty"` // "20:00"
}

// WeeklySchedule расписание работы по дням недели
type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// Salon модель салона из SalonService
type Salon struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	Coordinates    *Coordinates   `json:"coordinates,omitempty"`
	WorkingHours   WeeklySchedule `json:"working_hours"`
	StaffIDs       []int64        `json:"staff_ids"`
}

// IsApproved возвращает true для салонов, прошедших модерацию
// Только такие салоны участвуют в бронировании и поиске ближайших
func (s *Salon) IsApproved() bool {
	return s.ApprovalStatus == ApprovalApproved
}

// HasCoordinates возвращает true, если у салона заданы координаты
func (s *Salon) HasCoordinates() bool {
	return s.Coordinates != nil
}

// Staff модель мастера из SalonService
type Staff struct {
	ID       int64          `json:"id"`
	SalonID  int64          `json:"salon_id"`
	Name     string         `json:"name"`
	Approved bool           `json:"approved"`
	Schedule WeeklySchedule `json:"schedule"` // Недельный шаблон смен мастера
}

// Service модель услуги из SalonService
type Service struct {
	ID              int64    `json:"id"`
	SalonID         int64    `json:"salon_id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	StaffIDs        []int64  `json:"staff_ids"` // Мастера, выполняющие услугу
}

// Day возвращает расписание на день недели
func (ws *WeeklySchedule) Day(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return ws.Monday
	case time.Tuesday:
		return ws.Tuesday
	case time.Wednesday:
		return ws.Wednesday
	case time.Thursday:
		return ws.Thursday
	case time.Friday:
		return ws.Friday
	case time.Saturday:
		return ws.Saturday
	default:
		return ws.Sunday
	}
}

// WorkInterval возвращает рабочий интервал на день
// Второе значение false, если день выходной или время невалидно
func (d DaySchedule) WorkInterval() (types.TimeString, types.TimeString, bool) {
	if !d.IsOpen || d.OpenTime == nil || d.CloseTime == nil {
		return "", "", false
	}

	open, err := types.NewTimeStringFromString(*d.OpenTime)
	if err != nil {
		return "", "", false
	}
	closeAt, err := types.NewTimeStringFromString(*d.CloseTime)
	if err != nil {
		return "", "", false
	}

	return open, closeAt, true
}

// ErrorResponse модель ошибки от SalonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
