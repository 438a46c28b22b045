package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	requestRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedulerequest"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

// Service сервис для работы с заявками мастеров на изменение графика
type Service struct {
	requestRepo ScheduleRequestRepository
	salonClient SalonServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(requestRepo ScheduleRequestRepository, salonClient SalonServiceClient, logger Logger) *Service {
	return &Service{
		requestRepo: requestRepo,
		salonClient: salonClient,
		logger:      logger,
	}
}

// CreateRequest создает заявку мастера на отпуск или изменение смены
// Новая заявка не может пересекаться с другой активной заявкой того же мастера
func (s *Service) CreateRequest(ctx context.Context, req *models.CreateScheduleRequestRequest) (*models.ScheduleRequestResponse, error) {
	s.logger.Info("CreateRequest: creating %s request for staff=%d, salon=%d", req.Type, req.StaffID, req.SalonID)

	request, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateRequest: invalid request for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateRequest(request); err != nil {
		s.logger.Warn("CreateRequest: validation failed for staff=%d: %v", req.StaffID, err)
		return nil, err
	}

	// Мастер должен существовать и работать в указанном салоне
	staff, err := s.salonClient.GetStaff(ctx, request.StaffID)
	if err != nil {
		if errors.Is(err, salonservice.ErrStaffNotFound) {
			s.logger.Warn("CreateRequest: staff=%d not found", request.StaffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("CreateRequest: failed to fetch staff=%d: %v", request.StaffID, err)
		return nil, fmt.Errorf("%w: CreateRequest - fetch staff: %v", ErrInternal, err)
	}
	if staff.SalonID != request.SalonID {
		s.logger.Warn("CreateRequest: staff=%d does not belong to salon=%d", request.StaffID, request.SalonID)
		return nil, ErrStaffNotInSalon
	}

	// Проверка пересечения с активными заявками мастера
	active, err := s.requestRepo.GetActiveByStaff(ctx, request.StaffID)
	if err != nil {
		s.logger.Error("CreateRequest: repository error for staff=%d: %v", request.StaffID, err)
		return nil, fmt.Errorf("%w: CreateRequest - repository error: %v", ErrInternal, err)
	}
	for _, other := range active {
		if request.OverlapsRequest(other) {
			s.logger.Warn("CreateRequest: staff=%d request overlaps with request id=%d", request.StaffID, other.ID)
			return nil, fmt.Errorf("%w: request id=%d", ErrOverlappingRequest, other.ID)
		}
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		s.logger.Error("CreateRequest: failed to create request for staff=%d: %v", request.StaffID, err)
		return nil, fmt.Errorf("%w: CreateRequest - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRequest: request id=%d created for staff=%d", created.ID, created.StaffID)
	return models.FromDomainScheduleRequest(created), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleRequest(request), nil
}

// Decide одобряет или отклоняет заявку
// Решение принимается только по заявкам в статусе pending
func (s *Service) Decide(ctx context.Context, requestID int64, req *models.DecideScheduleRequestRequest) (*models.ScheduleRequestResponse, error) {
	s.logger.Info("Decide: deciding request id=%d as %s", requestID, req.Decision)

	decision, err := models.ToDomainDecision(req.Decision)
	if err != nil {
		s.logger.Warn("Decide: invalid decision=%s for request id=%d", req.Decision, requestID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, req.Decision)
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("Decide: request id=%d not found", requestID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("Decide: repository error for request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: Decide - repository error: %v", ErrInternal, err)
	}

	if request.Status != domain.RequestPending {
		s.logger.Warn("Decide: request id=%d already decided, status=%s", requestID, request.Status)
		return nil, fmt.Errorf("%w: status=%s", ErrAlreadyDecided, request.Status)
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, decision); err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("Decide: repository error for request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: Decide - repository error: %v", ErrInternal, err)
	}

	request.Status = decision
	s.logger.Info("Decide: request id=%d decided as %s", requestID, decision)
	return models.FromDomainScheduleRequest(request), nil
}

// validateRequest проверяет согласованность дат и времени заявки
func validateRequest(r *domain.ScheduleRequest) error {
	if r.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}
	if r.SalonID <= 0 {
		return fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}
	if r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	}

	// Время указывается либо парой, либо не указывается вовсе
	if r.StartTime.IsZero() != r.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidInput)
	}
	if !r.StartTime.IsZero() && !r.StartTime.IsBefore(r.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}
