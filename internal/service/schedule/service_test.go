package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	requestRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedulerequest"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeRequestRepo struct {
	requests map[int64]*domain.ScheduleRequest
	nextID   int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*domain.ScheduleRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domain.ScheduleRequest) (*domain.ScheduleRequest, error) {
	f.nextID++
	cp := *req
	cp.ID = f.nextID
	f.requests[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, requestRepo.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (f *fakeRequestRepo) GetActiveByStaff(_ context.Context, staffID int64) ([]*domain.ScheduleRequest, error) {
	var result []*domain.ScheduleRequest
	for _, req := range f.requests {
		if req.StaffID != staffID || req.Status == domain.RequestDenied {
			continue
		}
		cp := *req
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id int64, status domain.ScheduleRequestStatus) error {
	req, ok := f.requests[id]
	if !ok {
		return requestRepo.ErrRequestNotFound
	}
	req.Status = status
	return nil
}

type fakeSalonClient struct {
	staff map[int64]*salonservice.Staff
}

func (f *fakeSalonClient) GetStaff(_ context.Context, staffID int64) (*salonservice.Staff, error) {
	staff, ok := f.staff[staffID]
	if !ok {
		return nil, salonservice.ErrStaffNotFound
	}
	return staff, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRequestRepo) *Service {
	client := &fakeSalonClient{staff: map[int64]*salonservice.Staff{
		1: {ID: 1, SalonID: 5, Approved: true},
	}}
	return NewService(repo, client, nopLogger{})
}

func leaveRequest(startDate, endDate string) *models.CreateScheduleRequestRequest {
	return &models.CreateScheduleRequestRequest{
		StaffID:   1,
		SalonID:   5,
		Type:      "leave",
		StartDate: startDate,
		EndDate:   endDate,
	}
}

func TestCreateRequest(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := newTestService(repo)

	resp, err := svc.CreateRequest(context.Background(), leaveRequest("2026-09-15", "2026-09-20"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "leave", resp.Type)
	assert.Equal(t, string(domain.RequestPending), resp.Status)
	assert.Equal(t, "2026-09-15", resp.StartDate)
	assert.Equal(t, "2026-09-20", resp.EndDate)
}

func TestCreateRequest_OverlapRejected(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := newTestService(repo)

	_, err := svc.CreateRequest(context.Background(), leaveRequest("2026-09-15", "2026-09-20"))
	require.NoError(t, err)

	// пересечение по датам
	_, err = svc.CreateRequest(context.Background(), leaveRequest("2026-09-18", "2026-09-25"))
	assert.ErrorIs(t, err, ErrOverlappingRequest)

	// встык - не пересечение
	_, err = svc.CreateRequest(context.Background(), leaveRequest("2026-09-21", "2026-09-25"))
	assert.NoError(t, err)
}

func TestCreateRequest_PartialDayOverlap(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := newTestService(repo)

	first := leaveRequest("2026-09-15", "2026-09-15")
	first.StartTime = ptr.Ptr("10:00")
	first.EndTime = ptr.Ptr("14:00")
	_, err := svc.CreateRequest(context.Background(), first)
	require.NoError(t, err)

	// интервалы [10:00, 14:00) и [14:00, 18:00) не пересекаются
	second := leaveRequest("2026-09-15", "2026-09-15")
	second.StartTime = ptr.Ptr("14:00")
	second.EndTime = ptr.Ptr("18:00")
	_, err = svc.CreateRequest(context.Background(), second)
	assert.NoError(t, err)

	// заявка на весь день конфликтует с любыми в те же даты
	_, err = svc.CreateRequest(context.Background(), leaveRequest("2026-09-15", "2026-09-15"))
	assert.ErrorIs(t, err, ErrOverlappingRequest)
}

func TestCreateRequest_Validation(t *testing.T) {
	svc := newTestService(newFakeRequestRepo())

	// конец раньше начала
	_, err := svc.CreateRequest(context.Background(), leaveRequest("2026-09-20", "2026-09-15"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	// неизвестный тип
	bad := leaveRequest("2026-09-15", "2026-09-20")
	bad.Type = "sabbatical"
	_, err = svc.CreateRequest(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// время указано наполовину
	half := leaveRequest("2026-09-15", "2026-09-15")
	half.StartTime = ptr.Ptr("10:00")
	_, err = svc.CreateRequest(context.Background(), half)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRequest_StaffChecks(t *testing.T) {
	svc := newTestService(newFakeRequestRepo())

	unknown := leaveRequest("2026-09-15", "2026-09-20")
	unknown.StaffID = 99
	_, err := svc.CreateRequest(context.Background(), unknown)
	assert.ErrorIs(t, err, ErrStaffNotFound)

	wrongSalon := leaveRequest("2026-09-15", "2026-09-20")
	wrongSalon.SalonID = 6
	_, err = svc.CreateRequest(context.Background(), wrongSalon)
	assert.ErrorIs(t, err, ErrStaffNotInSalon)
}

func TestDecide(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := newTestService(repo)

	created, err := svc.CreateRequest(context.Background(), leaveRequest("2026-09-15", "2026-09-20"))
	require.NoError(t, err)

	resp, err := svc.Decide(context.Background(), created.ID, &models.DecideScheduleRequestRequest{Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestApproved), resp.Status)

	// повторное решение по той же заявке
	_, err = svc.Decide(context.Background(), created.ID, &models.DecideScheduleRequestRequest{Decision: "denied"})
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestDecide_Errors(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := newTestService(repo)

	_, err := svc.Decide(context.Background(), 99, &models.DecideScheduleRequestRequest{Decision: "approved"})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	created, err := svc.CreateRequest(context.Background(), leaveRequest("2026-09-15", "2026-09-20"))
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), created.ID, &models.DecideScheduleRequestRequest{Decision: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
