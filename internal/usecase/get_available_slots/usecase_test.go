package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeSalonClient struct {
	salons   map[int64]*salonservice.Salon
	services map[int64]*salonservice.Service
	staff    map[int64]*salonservice.Staff
	roster   map[int64][]*salonservice.Staff // по salonID, порядок стабилен
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

type fakeCalendar struct {
	occupancy map[int64][]domain.TimeInterval
}

func (f *fakeCalendar) StaffOccupancy(_ context.Context, _ int64, staffIDs []int64, _ time.Time) (map[int64][]domain.TimeInterval, error) {
	result := make(map[int64][]domain.TimeInterval, len(staffIDs))
	for _, id := range staffIDs {
		result[id] = f.occupancy[id]
	}
	return result, nil
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

func testConfig() Config {
	return Config{
		SlotGranularityMinutes:  30,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 30,
	}
}

// салон 09:00-20:00 с одним мастером и одной услугой на 30 минут
func singleStaffClient() *fakeSalonClient {
	staff := &salonservice.Staff{ID: 1, SalonID: 1, Approved: true, Schedule: fullWeek("09:00", "20:00")}
	return &fakeSalonClient{
		salons: map[int64]*salonservice.Salon{
			1: {ID: 1, ApprovalStatus: salonservice.ApprovalApproved, WorkingHours: fullWeek("09:00", "20:00")},
		},
		services: map[int64]*salonservice.Service{
			10: {ID: 10, SalonID: 1, DurationMinutes: 30},
		},
		staff:  map[int64]*salonservice.Staff{1: staff},
		roster: map[int64][]*salonservice.Staff{1: {staff}},
	}
}

func newTestUseCase(client *fakeSalonClient, calendar *fakeCalendar, now time.Time) *UseCase {
	return NewUseCase(client, calendar, &fixedTimeProvider{now: now}, testConfig(), nopLogger{})
}

func slotStarts(slots []domain.AvailableSlot) []types.TimeString {
	starts := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.StartTime)
	}
	return starts
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	calendar := &fakeCalendar{occupancy: map[int64][]domain.TimeInterval{
		1: {{Start: "10:00", End: "10:30"}},
	}}
	uc := newTestUseCase(singleStaffClient(), calendar, testNow)

	resp, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		Date:       testDate,
	})
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.NotContains(t, starts, types.TimeString("10:00"))
	assert.Contains(t, starts, types.TimeString("10:30"))
	assert.Contains(t, starts, types.TimeString("09:30"))
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_FullDayFree(t *testing.T) {
	uc := newTestUseCase(singleStaffClient(), &fakeCalendar{}, testNow)

	resp, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		Date:       testDate,
	})
	require.NoError(t, err)

	// 09:00-20:00, шаг 30 минут, услуга 30 минут: 22 слота, последний 19:30
	starts := slotStarts(resp.Slots)
	assert.Len(t, starts, 22)
	assert.Equal(t, types.TimeString("09:00"), starts[0])
	assert.Equal(t, types.TimeString("19:30"), starts[len(starts)-1])

	// каждому слоту назначен мастер
	for _, slot := range resp.Slots {
		require.NotNil(t, slot.StaffID)
		assert.Equal(t, int64(1), *slot.StaffID)
	}
}

func TestExecute_ClosedDay(t *testing.T) {
	client := singleStaffClient()
	salon := client.salons[1]
	salon.WorkingHours.Monday = salonservice.DaySchedule{IsOpen: false}

	uc := newTestUseCase(client, &fakeCalendar{}, testNow)

	resp, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		Date:       testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MultipleServicesCombinedDuration(t *testing.T) {
	client := singleStaffClient()
	client.services[11] = &salonservice.Service{ID: 11, SalonID: 1, DurationMinutes: 45}

	uc := newTestUseCase(client, &fakeCalendar{}, testNow)

	resp, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10, 11},
		Date:       testDate,
	})
	require.NoError(t, err)

	assert.Equal(t, 75, resp.DurationMinutes)
	// последний слот должен закончиться не позже 20:00: 18:30 + 75 мин = 19:45
	starts := slotStarts(resp.Slots)
	assert.Equal(t, types.TimeString("18:30"), starts[len(starts)-1])
}

func TestExecute_TodayRespectsMinNotice(t *testing.T) {
	uc := newTestUseCase(singleStaffClient(), &fakeCalendar{}, time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		Date:       testDate,
	})
	require.NoError(t, err)

	// до 12:30 слотов нет
	starts := slotStarts(resp.Slots)
	require.NotEmpty(t, starts)
	assert.Equal(t, types.TimeString("12:30"), starts[0])
}

func TestExecute_SpecificStaff(t *testing.T) {
	client := singleStaffClient()
	other := &salonservice.Staff{ID: 2, SalonID: 1, Approved: true, Schedule: fullWeek("09:00", "14:00")}
	client.staff[2] = other
	client.roster[1] = append(client.roster[1], other)

	uc := newTestUseCase(client, &fakeCalendar{}, testNow)

	resp, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		StaffID:    ptr.Ptr(int64(2)),
		Date:       testDate,
	})
	require.NoError(t, err)

	// слоты только в смену второго мастера
	starts := slotStarts(resp.Slots)
	assert.Equal(t, types.TimeString("13:30"), starts[len(starts)-1])
	for _, slot := range resp.Slots {
		require.NotNil(t, slot.StaffID)
		assert.Equal(t, int64(2), *slot.StaffID)
	}
}

func TestExecute_StaffCannotPerform(t *testing.T) {
	client := singleStaffClient()
	client.services[10].StaffIDs = []int64{99}

	uc := newTestUseCase(client, &fakeCalendar{}, testNow)

	_, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		StaffID:    ptr.Ptr(int64(1)),
		Date:       testDate,
	})
	assert.ErrorIs(t, err, ErrStaffCannotPerform)
}

func TestExecute_StaffNotInSalon(t *testing.T) {
	client := singleStaffClient()
	client.staff[3] = &salonservice.Staff{ID: 3, SalonID: 2, Approved: true}

	uc := newTestUseCase(client, &fakeCalendar{}, testNow)

	_, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		StaffID:    ptr.Ptr(int64(3)),
		Date:       testDate,
	})
	assert.ErrorIs(t, err, ErrStaffNotInSalon)
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newTestUseCase(singleStaffClient(), &fakeCalendar{}, testNow)

	_, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		Date:       testNow.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    1,
		ServiceIDs: []int64{10},
		Date:       testNow.AddDate(0, 0, 31),
	})
	assert.ErrorIs(t, err, ErrDateTooFar)
}

func TestExecute_SalonChecks(t *testing.T) {
	client := singleStaffClient()
	client.salons[2] = &salonservice.Salon{ID: 2, ApprovalStatus: salonservice.ApprovalPending}

	uc := newTestUseCase(client, &fakeCalendar{}, testNow)

	_, err := uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    99,
		ServiceIDs: []int64{10},
		Date:       testDate,
	})
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = uc.Execute(context.Background(), GetAvailableSlotsRequest{
		SalonID:    2,
		ServiceIDs: []int64{10},
		Date:       testDate,
	})
	assert.ErrorIs(t, err, ErrSalonNotApproved)
}
