package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *appt
	cp.ID = f.nextID
	f.appointments = append(f.appointments, &cp)
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetBySalonWithFilter(_ context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.SalonID != filter.SalonID {
			continue
		}
		if filter.StartDate != nil && appt.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && appt.Date.After(*filter.EndDate) {
			continue
		}
		cp := *appt
		result = append(result, &cp)
	}
	return result, nil
}

type fakeScheduleRepo struct {
	requests []*domain.ScheduleRequest
}

func (f *fakeScheduleRepo) GetApprovedForStaffOnDate(_ context.Context, _ []int64, _ time.Time) ([]*domain.ScheduleRequest, error) {
	return f.requests, nil
}

type fakeSalonClient struct {
	salons   map[int64]*salonservice.Salon
	services map[int64]*salonservice.Service
	staff    map[int64]*salonservice.Staff
	roster   map[int64][]*salonservice.Staff
}

func (f *fakeSalonClient) GetSalon(_ context.Context, salonID int64) (*salonservice.Salon, error) {
	salon, ok := f.salons[salonID]
	if !ok {
		return nil, salonservice.ErrSalonNotFound
	}
	return salon, nil
}

func (f *fakeSalonClient) GetService(_ context.Context, salonID, serviceID int64) (*salonservice.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, salonservice.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeSalonClient) GetStaff(_ context.Context, staffID int64) (*salonservice.Staff, error) {
	staff, ok := f.staff[staffID]
	if !ok {
		return nil, salonservice.ErrStaffNotFound
	}
	return staff, nil
}

func (f *fakeSalonClient) ListSalonStaff(_ context.Context, salonID int64) ([]*salonservice.Staff, error) {
	return f.roster[salonID], nil
}

// serialTxManager сериализует транзакции глобальной блокировкой -
// модель поведения FOR UPDATE на строках записей дня
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	// понедельник
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
)

func fullWeek(open, closeAt string) salonservice.WeeklySchedule {
	day := salonservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(closeAt),
	}
	return salonservice.WeeklySchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

// салон 09:00-20:00 с одним мастером и услугой на 30 минут за 2500
func singleStaffClient() *fakeSalonClient {
	staff := &salonservice.Staff{ID: 1, SalonID: 1, Approved: true, Schedule: fullWeek("09:00", "20:00")}
	return &fakeSalonClient{
		salons: map[int64]*salonservice.Salon{
			1: {ID: 1, ApprovalStatus: salonservice.ApprovalApproved, WorkingHours: fullWeek("09:00", "20:00")},
		},
		services: map[int64]*salonservice.Service{
			10: {ID: 10, SalonID: 1, Name: "Стрижка", Price: ptr.Ptr(2500.0), DurationMinutes: 30},
		},
		staff:  map[int64]*salonservice.Staff{1: staff},
		roster: map[int64][]*salonservice.Staff{1: {staff}},
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, schedules *fakeScheduleRepo, client *fakeSalonClient) *UseCase {
	cfg := Config{AdvanceBookingDays: 30, MinBookingNoticeMinutes: 30}
	return NewUseCase(repo, schedules, client, &serialTxManager{}, &fixedTimeProvider{now: testNow}, cfg, nopLogger{})
}

func bookingRequest(start string) CreateAppointmentRequest {
	return CreateAppointmentRequest{
		CustomerID: 7,
		SalonID:    1,
		ServiceIDs: []int64{10},
		Date:       testDate,
		StartTime:  types.TimeString(start),
	}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{}, singleStaffClient())

	resp, err := uc.Execute(context.Background(), bookingRequest("10:00"))
	require.NoError(t, err)

	appt := resp.Appointment
	assert.Equal(t, domain.StatusPending, appt.Status)
	assert.Equal(t, types.TimeString("10:00"), appt.StartTime)
	assert.Equal(t, 30, appt.DurationMinutes)
	assert.Equal(t, float64(2500), appt.FinalAmount)
	require.NotNil(t, appt.StaffID)
	assert.Equal(t, int64(1), *appt.StaffID)
	require.Len(t, appt.Services, 1)
	assert.Equal(t, "Стрижка", appt.Services[0].Name)
}

func TestExecute_ConflictOnOverlap(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{}, singleStaffClient())

	_, err := uc.Execute(context.Background(), bookingRequest("10:00"))
	require.NoError(t, err)

	// тот же слот занят
	_, err = uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// пересекающийся слот тоже
	_, err = uc.Execute(context.Background(), bookingRequest("10:15"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// соседний слот свободен: полуинтервалы [10:00, 10:30) и [10:30, 11:00)
	_, err = uc.Execute(context.Background(), bookingRequest("10:30"))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentBookingsExactlyOneWins(t *testing.T) {
	const workers = 16

	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{}, singleStaffClient())

	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), bookingRequest("10:00"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	assert.Len(t, repo.appointments, 1)
}

func TestExecute_SecondStaffTakesOverlap(t *testing.T) {
	client := singleStaffClient()
	second := &salonservice.Staff{ID: 2, SalonID: 1, Approved: true, Schedule: fullWeek("09:00", "20:00")}
	client.staff[2] = second
	client.roster[1] = append(client.roster[1], second)

	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{}, client)

	first, err := uc.Execute(context.Background(), bookingRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), *first.Appointment.StaffID)

	// первый мастер занят - тот же слот достаётся второму
	overlap, err := uc.Execute(context.Background(), bookingRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), *overlap.Appointment.StaffID)
}

func TestExecute_ApprovedLeaveBlocksStaff(t *testing.T) {
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

	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, schedules, singleStaffClient())

	// отпуск на весь день - любой слот конфликтует
	_, err := uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_PartialLeaveBlocksInterval(t *testing.T) {
	schedules := &fakeScheduleRepo{requests: []*domain.ScheduleRequest{
		{
			ID:        1,
			StaffID:   1,
			SalonID:   1,
			StartDate: testDate,
			EndDate:   testDate,
			StartTime: "12:00",
			EndTime:   "15:00",
			Type:      domain.RequestLeave,
			Status:    domain.RequestApproved,
		},
	}}

	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, schedules, singleStaffClient())

	_, err := uc.Execute(context.Background(), bookingRequest("13:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)

	_, err = uc.Execute(context.Background(), bookingRequest("15:00"))
	assert.NoError(t, err)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{}, singleStaffClient())

	// слот 19:45-20:15 выходит за закрытие
	_, err := uc.Execute(context.Background(), bookingRequest("19:45"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = uc.Execute(context.Background(), bookingRequest("08:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_StartTimeValidation(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeScheduleRepo{}, singleStaffClient())

	past := bookingRequest("10:00")
	past.Date = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), past)
	assert.ErrorIs(t, err, ErrDateInPast)

	far := bookingRequest("10:00")
	far.Date = testNow.AddDate(0, 0, 31)
	_, err = uc.Execute(context.Background(), far)
	assert.ErrorIs(t, err, ErrDateTooFar)

	// сегодня за 10 минут до начала при минимальном запасе 30 минут
	late := bookingRequest("12:10")
	late.Date = testNow
	_, err = uc.Execute(context.Background(), late)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_SalonNotApproved(t *testing.T) {
	client := singleStaffClient()
	client.salons[1].ApprovalStatus = salonservice.ApprovalPending

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, client)

	_, err := uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, ErrSalonNotApproved)
}
