package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetCustomerAppointmentsRequest запрос на получение записей клиента
type GetCustomerAppointmentsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetSalonAppointmentsRequest запрос на получение записей салона
type GetSalonAppointmentsRequest struct {
	SalonID         int64      `json:"salonId"`
	StaffIDs        []int64    `json:"staffIds,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonAppointmentsRequest) ToDomainFilter() (domain.StaffAppointmentsFilter, error) {
	filter := domain.StaffAppointmentsFilter{
		SalonID:         r.SalonID,
		StaffIDs:        r.StaffIDs,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ServiceLineResponse строка состава услуг записи
type ServiceLineResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64                 `json:"id"`
	CustomerID      int64                 `json:"customerId"`
	SalonID         int64                 `json:"salonId"`
	StaffID         *int64                `json:"staffId,omitempty"`
	Services        []ServiceLineResponse `json:"services"`
	Date            string                `json:"date"`      // "2026-09-15"
	StartTime       string                `json:"startTime"` // "10:00"
	DurationMinutes int                   `json:"durationMinutes"`
	Status          string                `json:"status"`
	FinalAmount     float64               `json:"finalAmount"`

	CancellationType *string  `json:"cancellationType,omitempty"`
	CancellationFee  *float64 `json:"cancellationFee,omitempty"`

	Notes       *string `json:"notes,omitempty"`
	CheckedInAt *string `json:"checkedInAt,omitempty"` // ISO 8601
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	services := make([]ServiceLineResponse, len(a.Services))
	for i, line := range a.Services {
		services[i] = ServiceLineResponse{
			ServiceID:       line.ServiceID,
			Name:            line.Name,
			Price:           line.Price,
			DurationMinutes: line.DurationMinutes,
		}
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		SalonID:         a.SalonID,
		StaffID:         a.StaffID,
		Services:        services,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		FinalAmount:     a.FinalAmount,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CancellationType != domain.CancellationNone {
		ct := string(a.CancellationType)
		fee := a.CancellationFee
		resp.CancellationType = &ct
		resp.CancellationFee = &fee
	}

	if a.CheckedInAt != nil {
		checkedInStr := a.CheckedInAt.Format(time.RFC3339)
		resp.CheckedInAt = &checkedInStr
	}
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}
