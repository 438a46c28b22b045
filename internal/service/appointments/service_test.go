package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func newFakeAppointmentRepo(appts ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, appt := range appts {
		repo.appointments[appt.ID] = appt
	}
	return repo
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.CustomerID != customerID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		cp := *appt
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetBySalonWithFilter(_ context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.SalonID != filter.SalonID {
			continue
		}
		if !filter.IncludeInactive && !appt.OccupiesCalendar() {
			continue
		}
		cp := *appt
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		CustomerID: 7,
		SalonID:    1,
		StaffID:    ptr.Ptr(int64(3)),
		Date:       time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		Status:     status,
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-03-16", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)

	// чужая запись
	_, err = svc.GetByID(context.Background(), 1, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetCustomerAppointments_StatusFilter(t *testing.T) {
	repo := newFakeAppointmentRepo(
		testAppointment(1, domain.StatusPending),
		testAppointment(2, domain.StatusCancelled),
	)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 7,
		Status:     ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)

	_, err = svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: 7,
		Status:     ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{name: "pending to approved", from: domain.StatusPending, to: "approved"},
		{name: "pending to rejected", from: domain.StatusPending, to: "rejected"},
		{name: "approved to cancelled", from: domain.StatusApproved, to: "cancelled"},
		{name: "pending to completed", from: domain.StatusPending, to: "completed", wantErr: ErrInvalidTransition},
		{name: "completed is terminal", from: domain.StatusCompleted, to: "approved", wantErr: ErrInvalidTransition},
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: "approved", wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAppointmentRepo(testAppointment(1, tt.from))
			svc := NewService(repo, nopLogger{})

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.appointments[1].Status)
		})
	}
}

func TestUpdateStatus_CompletionRequiresCheckIn(t *testing.T) {
	appt := testAppointment(1, domain.StatusApproved)
	repo := newFakeAppointmentRepo(appt)
	svc := NewService(repo, nopLogger{})

	// без прибытия завершить нельзя
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrNotCheckedIn)

	checkedInAt := time.Date(2026, 3, 16, 9, 55, 0, 0, time.UTC)
	repo.appointments[1].CheckedInAt = &checkedInAt

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.appointments[1].Status)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1, domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "paused"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
