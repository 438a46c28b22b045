package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetBySalonWithFilter(_ context.Context, _ domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	requests []*domain.ScheduleRequest
}

func (f *fakeScheduleRepo) GetApprovedForStaffOnDate(_ context.Context, _ []int64, _ time.Time) ([]*domain.ScheduleRequest, error) {
	return f.requests, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func TestStaffOccupancy(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 1, SalonID: 1, StaffID: ptr.Ptr(int64(1)), Date: testDate, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusApproved},
		{ID: 2, SalonID: 1, StaffID: ptr.Ptr(int64(1)), Date: testDate, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusPending},
		// отменённая запись календарь не занимает
		{ID: 3, SalonID: 1, StaffID: ptr.Ptr(int64(1)), Date: testDate, StartTime: "14:00", DurationMinutes: 30, Status: domain.StatusCancelled},
		// запись без мастера пропускается
		{ID: 4, SalonID: 1, StaffID: nil, Date: testDate, StartTime: "15:00", DurationMinutes: 30, Status: domain.StatusApproved},
	}}
	schedules := &fakeScheduleRepo{requests: []*domain.ScheduleRequest{
		{
			ID:        1,
			StaffID:   2,
			SalonID:   1,
			StartDate: testDate,
			EndDate:   testDate,
			StartTime: "12:00",
			EndTime:   "15:00",
			Type:      domain.RequestLeave,
			Status:    domain.RequestApproved,
		},
	}}

	svc := NewService(appts, schedules, nopLogger{})

	occupancy, err := svc.StaffOccupancy(context.Background(), 1, []int64{1, 2, 3}, testDate)
	require.NoError(t, err)

	// интервалы первого мастера отсортированы по началу
	assert.Equal(t, []domain.TimeInterval{
		{Start: "09:00", End: "10:00"},
		{Start: "10:00", End: "10:30"},
	}, occupancy[1])

	// отпускной блок второго мастера
	assert.Equal(t, []domain.TimeInterval{{Start: "12:00", End: "15:00"}}, occupancy[2])

	// свободный мастер получает пустой список, а не nil
	assert.NotNil(t, occupancy[3])
	assert.Empty(t, occupancy[3])
}

func TestStaffOccupancy_FullDayLeave(t *testing.T) {
	schedules := &fakeScheduleRepo{requests: []*domain.ScheduleRequest{
		{
			ID:        1,
			StaffID:   1,
			SalonID:   1,
			StartDate: testDate,
			EndDate:   testDate,
			Type:      domain.RequestLeave,
			Status:    domain.RequestApproved,
		},
	}}

	svc := NewService(&fakeAppointmentRepo{}, schedules, nopLogger{})

	occupancy, err := svc.StaffOccupancy(context.Background(), 1, []int64{1}, testDate)
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeInterval{fullDayInterval}, occupancy[1])
}

func TestStaffOccupancy_EmptyStaffList(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, nopLogger{})

	occupancy, err := svc.StaffOccupancy(context.Background(), 1, nil, testDate)
	require.NoError(t, err)
	assert.Empty(t, occupancy)
}
