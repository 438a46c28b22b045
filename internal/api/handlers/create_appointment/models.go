package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonID    int64   `json:"salonId"`
	ServiceIDs []int64 `json:"serviceIds"`
	StaffID    *int64  `json:"staffId,omitempty"`
	Date       string  `json:"date"`      // "2026-09-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// ServiceLineResponse строка состава услуг
type ServiceLineResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64                 `json:"id"`
	CustomerID      int64                 `json:"customerId"`
	SalonID         int64                 `json:"salonId"`
	StaffID         *int64                `json:"staffId,omitempty"`
	Services        []ServiceLineResponse `json:"services"`
	Date            string                `json:"date"`
	StartTime       string                `json:"startTime"`
	DurationMinutes int                   `json:"durationMinutes"`
	Status          string                `json:"status"`
	FinalAmount     float64               `json:"finalAmount"`
	Notes           *string               `json:"notes,omitempty"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID int64) (createAppointment.CreateAppointmentRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return createAppointment.CreateAppointmentRequest{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return createAppointment.CreateAppointmentRequest{}, err
	}

	return createAppointment.CreateAppointmentRequest{
		CustomerID: customerID,
		SalonID:    r.SalonID,
		ServiceIDs: r.ServiceIDs,
		StaffID:    r.StaffID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.CreateAppointmentResponse) *AppointmentResponse {
	appt := resp.Appointment

	services := make([]ServiceLineResponse, len(appt.Services))
	for i, line := range appt.Services {
		services[i] = ServiceLineResponse{
			ServiceID:       line.ServiceID,
			Name:            line.Name,
			Price:           line.Price,
			DurationMinutes: line.DurationMinutes,
		}
	}

	return &AppointmentResponse{
		ID:              appt.ID,
		CustomerID:      appt.CustomerID,
		SalonID:         appt.SalonID,
		StaffID:         appt.StaffID,
		Services:        services,
		Date:            appt.Date.Format(domain.DateFormat),
		StartTime:       appt.StartTime.String(),
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		FinalAmount:     appt.FinalAmount,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       appt.UpdatedAt.Format(time.RFC3339),
	}
}
