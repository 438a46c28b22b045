package issue_checkin_token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/checkintoken"
)

// Число попыток генерации кода при коллизии с активным токеном
const maxGenerateAttempts = 5

// Config параметры выдачи токенов
type Config struct {
	TokenTTLMinutes int
}

// UseCase выдача одноразовых токенов прибытия
type UseCase struct {
	tokenRepo       TokenRepo
	appointmentRepo AppointmentRepo
	timeProvider    TimeProvider
	cfg             Config
	log             Logger
}

// NewUseCase создаёт UseCase выдачи токенов прибытия
func NewUseCase(tokenRepo TokenRepo, appointmentRepo AppointmentRepo, timeProvider TimeProvider, cfg Config, log Logger) *UseCase {
	return &UseCase{
		tokenRepo:       tokenRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    timeProvider,
		cfg:             cfg,
		log:             log,
	}
}

// ExecuteForAppointment выдаёт токен прибытия для записи.
// Повторный запрос возвращает уже выданный активный токен, а не новый
func (uc *UseCase) ExecuteForAppointment(ctx context.Context, req IssueForAppointmentRequest) (*IssueTokenResponse, error) {
	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerId must be positive", ErrInvalidInput)
	}

	// 2. Проверка записи: существует, принадлежит клиенту, не в конечном статусе
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: appointmentID=%d", ErrAppointmentNotFound, req.AppointmentID)
		}
		uc.log.Error("IssueCheckinToken: failed to fetch appointment %d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: fetch appointment: %v", ErrInternal, err)
	}
	if appt.CustomerID != req.CustomerID {
		return nil, fmt.Errorf("%w: appointmentID=%d", ErrAccessDenied, req.AppointmentID)
	}
	if appt.IsTerminal() {
		return nil, fmt.Errorf("%w: appointmentID=%d, status=%s", ErrAppointmentNotActive, req.AppointmentID, appt.Status)
	}

	now := uc.timeProvider.Now()

	// 3. Повторный запрос - возвращаем существующий активный токен
	existing, err := uc.tokenRepo.GetActiveByAppointment(ctx, req.AppointmentID)
	if err != nil && !errors.Is(err, checkintoken.ErrTokenNotFound) {
		uc.log.Error("IssueCheckinToken: failed to look up active token for appointment %d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: lookup token: %v", ErrInternal, err)
	}
	if existing != nil && !existing.IsExpiredAt(now) {
		return &IssueTokenResponse{Token: existing}, nil
	}

	// 4. Генерация и сохранение нового токена
	appointmentID := req.AppointmentID
	token, err := uc.createToken(ctx, now, &domain.CheckInToken{
		AppointmentID: &appointmentID,
		SalonID:       appt.SalonID,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("IssueCheckinToken: token issued for appointment %d", req.AppointmentID)
	return &IssueTokenResponse{Token: token}, nil
}

// ExecuteForWalkIn выдаёт токен прибытия для walk-in очереди.
// Запись в этом случае не создаётся, токен привязывается к внешней ссылке
func (uc *UseCase) ExecuteForWalkIn(ctx context.Context, req IssueForWalkInRequest) (*IssueTokenResponse, error) {
	if req.SalonID <= 0 {
		return nil, fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	walkInRef := uuid.New()

	token, err := uc.createToken(ctx, now, &domain.CheckInToken{
		WalkInRef: &walkInRef,
		SalonID:   req.SalonID,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("IssueCheckinToken: walk-in token issued for salon %d, ref %s", req.SalonID, walkInRef)
	return &IssueTokenResponse{Token: token}, nil
}

// createToken генерирует код и сохраняет токен, повторяя генерацию
// при коллизии кода с другим активным токеном
func (uc *UseCase) createToken(ctx context.Context, now time.Time, template *domain.CheckInToken) (*domain.CheckInToken, error) {
	template.Status = domain.TokenIssued
	template.IssuedAt = now
	template.ExpiresAt = now.Add(time.Duration(uc.cfg.TokenTTLMinutes) * time.Minute)

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := generateToken()
		if err != nil {
			uc.log.Error("IssueCheckinToken: token generation failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		template.Token = code
		created, err := uc.tokenRepo.Create(ctx, template)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, checkintoken.ErrDuplicateToken) {
			continue
		}
		uc.log.Error("IssueCheckinToken: failed to store token: %v", err)
		return nil, fmt.Errorf("%w: store token: %v", ErrInternal, err)
	}

	uc.log.Error("IssueCheckinToken: exhausted %d attempts to generate unique token", maxGenerateAttempts)
	return nil, ErrTokenGeneration
}
