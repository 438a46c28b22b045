package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
)

// UseCase отмена записи с классификацией и расчётом штрафа
type UseCase struct {
	appointmentRepo AppointmentRepo
	txManager       TxManager
	timeProvider    TimeProvider
	cfg             Config
	log             Logger
}

// NewUseCase создаёт UseCase отмены записи
func NewUseCase(appointmentRepo AppointmentRepo, txManager TxManager, timeProvider TimeProvider, cfg Config, log Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		cfg:             cfg,
		log:             log,
	}
}

// Execute отменяет запись. Классификация (ранняя/поздняя/no-show) и штраф
// считаются по моменту запроса внутри транзакции с блокировкой строки записи
func (uc *UseCase) Execute(ctx context.Context, req CancelAppointmentRequest) (*CancelAppointmentResponse, error) {
	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerId must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var resp *CancelAppointmentResponse
	txErr := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Выборка записи с блокировкой строки
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointment.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("fetch appointment: %w", err)
		}

		// 3. Проверка владельца и статуса
		if appt.CustomerID != req.CustomerID {
			return ErrAccessDenied
		}
		if !appt.CanBeCancelled() {
			return fmt.Errorf("%w: status=%s", ErrCannotCancel, appt.Status)
		}

		// 4. Классификация отмены и расчёт штрафа
		start, err := appt.StartTime.At(appt.Date)
		if err != nil {
			return fmt.Errorf("resolve start time: %w", err)
		}

		cancellationType, percent := classifyCancellation(start, now, appt.HasCheckedIn(), uc.cfg)
		fee := cancellationFee(appt.FinalAmount, percent)

		// 5. Сохранение отмены
		if err := uc.appointmentRepo.Cancel(txCtx, appt.ID, cancellationType, fee, now); err != nil {
			return fmt.Errorf("cancel appointment: %w", err)
		}

		resp = &CancelAppointmentResponse{
			AppointmentID:    appt.ID,
			CancellationType: cancellationType,
			CancellationFee:  fee,
			CancelledAt:      now,
		}
		return nil
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, ErrAppointmentNotFound),
			errors.Is(txErr, ErrAccessDenied),
			errors.Is(txErr, ErrCannotCancel):
			return nil, txErr
		}
		uc.log.Error("CancelAppointment: transaction failed for appointment %d: %v", req.AppointmentID, txErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.log.Info("CancelAppointment: appointment %d cancelled as %s, fee %.2f",
		resp.AppointmentID, resp.CancellationType, resp.CancellationFee)
	return resp, nil
}
