package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrInvalidType возвращается при некорректном типе заявки
	ErrInvalidType = errors.New("invalid schedule request type")

	// ErrInvalidDecision возвращается при некорректном решении по заявке
	ErrInvalidDecision = errors.New("invalid schedule request decision")
)

// Request модели

// CreateScheduleRequestRequest заявка мастера на изменение графика
type CreateScheduleRequestRequest struct {
	StaffID   int64   `json:"staffId"`
	SalonID   int64   `json:"salonId"`
	Type      string  `json:"type"`                // leave | shift_change
	StartDate string  `json:"startDate"`           // "2026-09-15"
	EndDate   string  `json:"endDate"`             // "2026-09-20"
	StartTime *string `json:"startTime,omitempty"` // "14:00", пусто = весь день
	EndTime   *string `json:"endTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// DecideScheduleRequestRequest решение по заявке
type DecideScheduleRequestRequest struct {
	Decision string `json:"decision"` // approved | denied
}

// ToDomainType конвертирует строку в domain тип заявки
func ToDomainType(s string) (domain.ScheduleRequestType, error) {
	t := domain.ScheduleRequestType(s)
	if t != domain.RequestLeave && t != domain.RequestShiftChange {
		return "", ErrInvalidType
	}
	return t, nil
}

// ToDomainDecision конвертирует строку решения в domain статус
func ToDomainDecision(s string) (domain.ScheduleRequestStatus, error) {
	status := domain.ScheduleRequestStatus(s)
	if status != domain.RequestApproved && status != domain.RequestDenied {
		return "", ErrInvalidDecision
	}
	return status, nil
}

// ToDomain конвертирует request в domain модель
func (r *CreateScheduleRequestRequest) ToDomain() (*domain.ScheduleRequest, error) {
	reqType, err := ToDomainType(r.Type)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	req := &domain.ScheduleRequest{
		StaffID:   r.StaffID,
		SalonID:   r.SalonID,
		StartDate: startDate,
		EndDate:   endDate,
		Type:      reqType,
		Status:    domain.RequestPending,
		Reason:    r.Reason,
	}

	if r.StartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = ts
	}
	if r.EndTime != nil {
		ts, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = ts
	}

	return req, nil
}

// Response модели

// ScheduleRequestResponse ответ с данными заявки
type ScheduleRequestResponse struct {
	ID        int64   `json:"id"`
	StaffID   int64   `json:"staffId"`
	SalonID   int64   `json:"salonId"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainScheduleRequest конвертирует domain модель в DTO
func FromDomainScheduleRequest(r *domain.ScheduleRequest) *ScheduleRequestResponse {
	if r == nil {
		return nil
	}

	resp := &ScheduleRequestResponse{
		ID:        r.ID,
		StaffID:   r.StaffID,
		SalonID:   r.SalonID,
		Type:      string(r.Type),
		Status:    string(r.Status),
		StartDate: r.StartDate.Format(domain.DateFormat),
		EndDate:   r.EndDate.Format(domain.DateFormat),
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if !r.StartTime.IsZero() {
		startStr := r.StartTime.String()
		resp.StartTime = &startStr
	}
	if !r.EndTime.IsZero() {
		endStr := r.EndTime.String()
		resp.EndTime = &endStr
	}

	return resp
}
