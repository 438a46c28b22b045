package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/checkintoken"
)

// UseCase регистрация прибытия по одноразовому токену
type UseCase struct {
	tokenRepo       TokenRepo
	appointmentRepo AppointmentRepo
	txManager       TxManager
	timeProvider    TimeProvider
	log             Logger
}

// NewUseCase создаёт UseCase регистрации прибытия
func NewUseCase(tokenRepo TokenRepo, appointmentRepo AppointmentRepo, txManager TxManager, timeProvider TimeProvider, log Logger) *UseCase {
	return &UseCase{
		tokenRepo:       tokenRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		log:             log,
	}
}

// Execute регистрирует прибытие по токену. Токен одноразовый: конкурентные
// предъявления сериализуются блокировкой строки токена, ровно одно
// завершается успехом, остальные получают ErrTokenAlreadyConsumed
func (uc *UseCase) Execute(ctx context.Context, req CheckInRequest) (*CheckInResponse, error) {
	// 1. Проверка формата до любых обращений к хранилищу
	if !domain.IsValidTokenFormat(req.Token) {
		return nil, fmt.Errorf("%w: %q", ErrTokenFormatInvalid, req.Token)
	}

	now := uc.timeProvider.Now()

	var resp *CheckInResponse
	txErr := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Выборка токена с блокировкой строки
		token, err := uc.tokenRepo.GetByToken(txCtx, req.Token)
		if err != nil {
			if errors.Is(err, checkintoken.ErrTokenNotFound) {
				return ErrTokenNotFound
			}
			return fmt.Errorf("fetch token: %w", err)
		}

		// 3. Переход состояния
		switch token.Status {
		case domain.TokenExpired:
			return ErrTokenExpired

		case domain.TokenCheckedIn, domain.TokenConsumed:
			return ErrTokenAlreadyConsumed

		case domain.TokenIssued:
			// Ленивое истечение: janitor мог ещё не добраться до токена
			if token.IsExpiredAt(now) {
				if err := uc.tokenRepo.UpdateStatus(txCtx, token.ID, domain.TokenExpired, nil); err != nil {
					return fmt.Errorf("expire token: %w", err)
				}
				return ErrTokenExpired
			}

			if err := uc.tokenRepo.UpdateStatus(txCtx, token.ID, domain.TokenCheckedIn, &now); err != nil {
				return fmt.Errorf("mark token checked in: %w", err)
			}

			// Для записей фиксируем прибытие и на самой записи -
			// от этого зависит классификация no-show при отмене
			if token.AppointmentID != nil {
				if err := uc.appointmentRepo.SetCheckedIn(txCtx, *token.AppointmentID, now); err != nil {
					return fmt.Errorf("mark appointment checked in: %w", err)
				}
			}

			resp = &CheckInResponse{
				Token:         token.Token,
				SalonID:       token.SalonID,
				AppointmentID: token.AppointmentID,
				WalkIn:        token.IsWalkIn(),
				CheckedInAt:   now,
			}
			return nil

		default:
			return fmt.Errorf("unexpected token status %q", token.Status)
		}
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, ErrTokenNotFound),
			errors.Is(txErr, ErrTokenExpired),
			errors.Is(txErr, ErrTokenAlreadyConsumed):
			return nil, txErr
		}
		uc.log.Error("CheckIn: transaction failed for token %q: %v", req.Token, txErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.log.Info("CheckIn: token %s checked in at salon %d", resp.Token, resp.SalonID)
	return resp, nil
}
