package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
)

type fakeAppointmentRepo struct {
	appt *domain.Appointment

	cancelledType domain.CancellationType
	cancelledFee  float64
	cancelCalled  bool
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, appointment.ErrAppointmentNotFound
	}
	cp := *f.appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, _ int64, cancellationType domain.CancellationType, fee float64, _ time.Time) error {
	f.cancelCalled = true
	f.cancelledType = cancellationType
	f.cancelledFee = fee
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          42,
		CustomerID:  7,
		SalonID:     1,
		Date:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   "18:00",
		Status:      domain.StatusApproved,
		FinalAmount: 2500,
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, now time.Time) *UseCase {
	return NewUseCase(repo, &fakeTxManager{}, &fixedTimeProvider{now: now}, testPolicyConfig, nopLogger{})
}

func TestExecute_LateCancellation(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: testAppointment()}
	// отмена в 16:00 записи на 18:00 того же дня
	now := time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 42, CustomerID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.CancellationLate, resp.CancellationType)
	assert.Equal(t, float64(1250), resp.CancellationFee)
	assert.Equal(t, now, resp.CancelledAt)
	assert.True(t, repo.cancelCalled)
	assert.Equal(t, domain.CancellationLate, repo.cancelledType)
}

func TestExecute_EarlyCancellation(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: testAppointment()}
	// отмена накануне в 08:00
	now := time.Date(2026, 3, 13, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 42, CustomerID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.CancellationEarly, resp.CancellationType)
	assert.Equal(t, float64(0), resp.CancellationFee)
}

func TestExecute_NoShow(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: testAppointment()}
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 42, CustomerID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.CancellationNoShow, resp.CancellationType)
	assert.Equal(t, float64(2500), resp.CancellationFee)
}

func TestExecute_CheckedInAfterStartIsLate(t *testing.T) {
	appt := testAppointment()
	checkedInAt := time.Date(2026, 3, 14, 17, 55, 0, 0, time.UTC)
	appt.CheckedInAt = &checkedInAt

	repo := &fakeAppointmentRepo{appt: appt}
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 42, CustomerID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.CancellationLate, resp.CancellationType)
	assert.Equal(t, float64(1250), resp.CancellationFee)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, time.Now())

	_, err := uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 99, CustomerID: 7})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: testAppointment()}
	uc := newTestUseCase(repo, time.Now())

	_, err := uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 42, CustomerID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.cancelCalled)
}

func TestExecute_CannotCancelTerminalStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			appt := testAppointment()
			appt.Status = status
			repo := &fakeAppointmentRepo{appt: appt}
			uc := newTestUseCase(repo, time.Now())

			_, err := uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 42, CustomerID: 7})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 0, CustomerID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), CancelAppointmentRequest{AppointmentID: 42, CustomerID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
