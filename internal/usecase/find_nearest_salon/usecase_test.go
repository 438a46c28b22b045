package find_nearest_salon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeSalonClient struct {
	salons []*salonservice.Salon
}

func (f *fakeSalonClient) ListApprovedSalons(_ context.Context) ([]*salonservice.Salon, error) {
	return f.salons, nil
}

type fakeSlotsProvider struct {
	slots map[int64][]domain.AvailableSlot // по salonID
	errs  map[int64]error
}

func (f *fakeSlotsProvider) Execute(_ context.Context, req get_available_slots.GetAvailableSlotsRequest) (*get_available_slots.GetAvailableSlotsResponse, error) {
	if err, ok := f.errs[req.SalonID]; ok {
		return nil, err
	}
	return &get_available_slots.GetAvailableSlotsResponse{
		SalonID: req.SalonID,
		Date:    req.Date,
		Slots:   f.slots[req.SalonID],
	}, nil
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

var testNow = time.Date(2026, 3, 16, 13, 0, 0, 0, time.UTC)

// клиент в центре Бангалора
const (
	customerLat = 12.9716
	customerLon = 77.5946
)

// salonAt салон на расстоянии примерно distKm к северу от клиента
// (один градус широты - примерно 111 км)
func salonAt(id int64, name string, distKm float64) *salonservice.Salon {
	return &salonservice.Salon{
		ID:             id,
		Name:           name,
		ApprovalStatus: salonservice.ApprovalApproved,
		Coordinates: &salonservice.Coordinates{
			Latitude:  customerLat + distKm/111.0,
			Longitude: customerLon,
		},
	}
}

func newTestUseCase(client *fakeSalonClient, slots *fakeSlotsProvider) *UseCase {
	cfg := Config{DefaultRadiusKm: 5, DefaultWithinMinutes: 120}
	return NewUseCase(client, slots, &fixedTimeProvider{now: testNow}, cfg, nopLogger{})
}

func panicRequest() FindNearestSalonRequest {
	return FindNearestSalonRequest{
		Latitude:   customerLat,
		Longitude:  customerLon,
		ServiceIDs: []int64{10},
	}
}

func TestHaversineKm(t *testing.T) {
	// совпадающие точки
	assert.InDelta(t, 0, haversineKm(customerLat, customerLon, customerLat, customerLon), 0.001)

	// один градус широты на экваторе - примерно 111 км
	assert.InDelta(t, 111.19, haversineKm(0, 0, 1, 0), 0.5)

	// Москва - Санкт-Петербург, примерно 634 км
	assert.InDelta(t, 634, haversineKm(55.7558, 37.6173, 59.9311, 30.3609), 5)
}

func TestExecute_NearestWithSlotWins(t *testing.T) {
	// салон в 2 км без слотов, салон в 4 км со слотом в 14:15
	client := &fakeSalonClient{salons: []*salonservice.Salon{
		salonAt(1, "Ближний", 2),
		salonAt(2, "Дальний", 4),
	}}
	slots := &fakeSlotsProvider{slots: map[int64][]domain.AvailableSlot{
		1: {},
		2: {{StartTime: "14:15", DurationMinutes: 30, StaffID: ptr.Ptr(int64(5))}},
	}}
	uc := newTestUseCase(client, slots)

	resp, err := uc.Execute(context.Background(), panicRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.SalonID)
	assert.Equal(t, "Дальний", resp.SalonName)
	assert.InDelta(t, 4, resp.DistanceKm, 0.1)
	assert.Equal(t, types.TimeString("14:15"), resp.Slot.StartTime)
}

func TestExecute_NearestBeatsEarlierSlot(t *testing.T) {
	// у дальнего салона слот раньше по времени, но побеждает ближний
	client := &fakeSalonClient{salons: []*salonservice.Salon{
		salonAt(1, "Дальний", 4),
		salonAt(2, "Ближний", 2),
	}}
	slots := &fakeSlotsProvider{slots: map[int64][]domain.AvailableSlot{
		1: {{StartTime: "13:15", DurationMinutes: 30}},
		2: {{StartTime: "14:30", DurationMinutes: 30}},
	}}
	uc := newTestUseCase(client, slots)

	resp, err := uc.Execute(context.Background(), panicRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.SalonID)
	assert.Equal(t, types.TimeString("14:30"), resp.Slot.StartTime)
}

func TestExecute_SlotOutsideWindowSkipped(t *testing.T) {
	// окно 120 минут: слот в 16:00 не подходит, салон пропускается
	client := &fakeSalonClient{salons: []*salonservice.Salon{
		salonAt(1, "Ближний", 2),
		salonAt(2, "Дальний", 4),
	}}
	slots := &fakeSlotsProvider{slots: map[int64][]domain.AvailableSlot{
		1: {{StartTime: "16:00", DurationMinutes: 30}},
		2: {{StartTime: "14:00", DurationMinutes: 30}},
	}}
	uc := newTestUseCase(client, slots)

	resp, err := uc.Execute(context.Background(), panicRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.SalonID)
}

func TestExecute_OutOfRadiusExcluded(t *testing.T) {
	client := &fakeSalonClient{salons: []*salonservice.Salon{
		salonAt(1, "Далеко", 10),
	}}
	slots := &fakeSlotsProvider{slots: map[int64][]domain.AvailableSlot{
		1: {{StartTime: "13:30", DurationMinutes: 30}},
	}}
	uc := newTestUseCase(client, slots)

	_, err := uc.Execute(context.Background(), panicRequest())
	assert.ErrorIs(t, err, ErrNoAvailabilityFound)

	// расширение радиуса запросом находит салон
	req := panicRequest()
	req.RadiusKm = ptr.Ptr(15.0)
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.SalonID)
}

func TestExecute_SalonWithoutCoordinatesSkipped(t *testing.T) {
	noCoords := &salonservice.Salon{ID: 1, Name: "Без координат", ApprovalStatus: salonservice.ApprovalApproved}
	client := &fakeSalonClient{salons: []*salonservice.Salon{noCoords}}
	uc := newTestUseCase(client, &fakeSlotsProvider{})

	_, err := uc.Execute(context.Background(), panicRequest())
	assert.ErrorIs(t, err, ErrNoAvailabilityFound)
}

func TestExecute_PerSalonErrorsDoNotAbort(t *testing.T) {
	client := &fakeSalonClient{salons: []*salonservice.Salon{
		salonAt(1, "Сломанный", 1),
		salonAt(2, "Рабочий", 3),
	}}
	slots := &fakeSlotsProvider{
		slots: map[int64][]domain.AvailableSlot{
			2: {{StartTime: "13:30", DurationMinutes: 30}},
		},
		errs: map[int64]error{1: get_available_slots.ErrServiceNotFound},
	}
	uc := newTestUseCase(client, slots)

	resp, err := uc.Execute(context.Background(), panicRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.SalonID)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeSalonClient{}, &fakeSlotsProvider{})

	req := panicRequest()
	req.Latitude = 91
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = panicRequest()
	req.Longitude = -181
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = panicRequest()
	req.ServiceIDs = nil
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = panicRequest()
	req.RadiusKm = ptr.Ptr(-1.0)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
