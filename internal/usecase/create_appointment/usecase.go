package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// Config параметры бронирования
type Config struct {
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
}

// UseCase бронирование слота с защитой от двойного бронирования
type UseCase struct {
	appointmentRepo AppointmentRepo
	scheduleRepo    ScheduleRequestRepo
	salonClient     SalonServiceClient
	txManager       TxManager
	timeProvider    TimeProvider
	cfg             Config
	log             Logger
}

// NewUseCase создаёт UseCase для бронирования слота
func NewUseCase(
	appointmentRepo AppointmentRepo,
	scheduleRepo ScheduleRequestRepo,
	salonClient SalonServiceClient,
	txManager TxManager,
	timeProvider TimeProvider,
	cfg Config,
	log Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		salonClient:     salonClient,
		txManager:       txManager,
		timeProvider:    timeProvider,
		cfg:             cfg,
		log:             log,
	}
}

// Execute бронирует слот. Проверка конфликтов и вставка записи выполняются
// в одной Serializable-транзакции: из двух конкурентных бронирований одного
// слота ровно одно завершается успехом, второе получает ErrSlotConflict
func (uc *UseCase) Execute(ctx context.Context, req CreateAppointmentRequest) (*CreateAppointmentResponse, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверка даты и времени начала
	start, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := validateStart(start, now, uc.cfg.AdvanceBookingDays, uc.cfg.MinBookingNoticeMinutes); err != nil {
		return nil, err
	}

	// 3. Получение салона и проверка модерации
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonservice.ErrSalonNotFound) {
			return nil, fmt.Errorf("%w: salonID=%d", ErrSalonNotFound, req.SalonID)
		}
		uc.log.Error("CreateAppointment: failed to fetch salon %d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: fetch salon: %v", ErrInternal, err)
	}
	if !salon.IsApproved() {
		return nil, fmt.Errorf("%w: salonID=%d", ErrSalonNotApproved, req.SalonID)
	}

	// 4. Получение услуг, фиксация состава и стоимости на момент бронирования
	services, err := uc.fetchServices(ctx, req.SalonID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	lines := make(domain.ServiceLines, 0, len(services))
	for _, svc := range services {
		price := 0.0
		if svc.Price != nil {
			price = *svc.Price
		}
		lines = append(lines, domain.ServiceLine{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			Price:           price,
			DurationMinutes: svc.DurationMinutes,
		})
	}
	duration := lines.TotalDuration()

	// 5. Проверка рабочих часов салона: слот целиком внутри рабочего дня
	weekday := req.Date.Weekday()
	salonOpen, salonClose, open := salon.WorkingHours.Day(weekday).WorkInterval()
	if !open {
		return nil, fmt.Errorf("%w: salon is closed on %s", ErrOutsideWorkingHours, weekday)
	}
	end, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		return nil, fmt.Errorf("%w: slot runs past midnight", ErrOutsideWorkingHours)
	}
	candidate := domain.TimeInterval{Start: req.StartTime, End: end}
	workDay := domain.TimeInterval{Start: salonOpen, End: salonClose}
	if !workDay.Contains(candidate) {
		return nil, fmt.Errorf("%w: working hours %s-%s", ErrOutsideWorkingHours, salonOpen, salonClose)
	}

	// 6. Формирование списка мастеров-кандидатов
	roster, err := uc.buildRoster(ctx, req, services)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: no staff can perform requested services", ErrSlotConflict)
	}

	// 7. Транзакционная проверка конфликтов и вставка записи.
	// Выборка записей дня идёт с блокировкой FOR UPDATE - конкурентные
	// бронирования того же дня сериализуются на этих строках
	var created *domain.Appointment
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		staffIDs := make([]int64, 0, len(roster))
		for _, staff := range roster {
			staffIDs = append(staffIDs, staff.ID)
		}

		appointments, err := uc.appointmentRepo.GetBySalonWithFilter(txCtx, domain.StaffAppointmentsFilter{
			SalonID:   req.SalonID,
			StaffIDs:  staffIDs,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			return fmt.Errorf("load day appointments: %w", err)
		}

		requests, err := uc.scheduleRepo.GetApprovedForStaffOnDate(txCtx, staffIDs, req.Date)
		if err != nil {
			return fmt.Errorf("load schedule requests: %w", err)
		}

		occupancy := buildOccupancy(appointments, requests, workDay, req.Date)

		// Первый свободный мастер в стабильном порядке SalonService
		var assigned *salonservice.Staff
		for _, staff := range roster {
			shift, ok := staffWorkInterval(staff, weekday, salonOpen, salonClose)
			if !ok || !shift.Contains(candidate) {
				continue
			}
			if domain.OverlapsAny(candidate, occupancy[staff.ID]) {
				continue
			}
			assigned = staff
			break
		}
		if assigned == nil {
			return ErrSlotConflict
		}

		staffID := assigned.ID
		appt := &domain.Appointment{
			CustomerID:       req.CustomerID,
			SalonID:          req.SalonID,
			StaffID:          &staffID,
			Services:         lines,
			Date:             req.Date,
			StartTime:        req.StartTime,
			DurationMinutes:  duration,
			Status:           domain.StatusPending,
			CancellationType: domain.CancellationNone,
			FinalAmount:      lines.TotalAmount(),
			Notes:            req.Notes,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrSlotConflict) {
			return nil, ErrSlotConflict
		}
		// Исчерпаны повторы Serializable-транзакции - конкурент успел раньше
		if errors.Is(txErr, txmanager.ErrSerializationFailure) {
			uc.log.Warn("CreateAppointment: serialization retries exhausted for salon %d: %v", req.SalonID, txErr)
			return nil, ErrSlotConflict
		}
		uc.log.Error("CreateAppointment: transaction failed for salon %d: %v", req.SalonID, txErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.log.Info("CreateAppointment: appointment %d created for customer %d, salon %d, %s %s",
		created.ID, req.CustomerID, req.SalonID, req.Date.Format(domain.DateFormat), req.StartTime)

	return &CreateAppointmentResponse{Appointment: created}, nil
}

// fetchServices загружает услуги салона и проверяет их принадлежность салону
func (uc *UseCase) fetchServices(ctx context.Context, salonID int64, serviceIDs []int64) ([]*salonservice.Service, error) {
	services := make([]*salonservice.Service, 0, len(serviceIDs))
	for _, serviceID := range serviceIDs {
		svc, err := uc.salonClient.GetService(ctx, salonID, serviceID)
		if err != nil {
			if errors.Is(err, salonservice.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: serviceID=%d", ErrServiceNotFound, serviceID)
			}
			uc.log.Error("CreateAppointment: failed to fetch service %d of salon %d: %v", serviceID, salonID, err)
			return nil, fmt.Errorf("%w: fetch service: %v", ErrInternal, err)
		}
		services = append(services, svc)
	}
	return services, nil
}

// buildRoster формирует упорядоченный список мастеров-кандидатов
func (uc *UseCase) buildRoster(ctx context.Context, req CreateAppointmentRequest, services []*salonservice.Service) ([]*salonservice.Staff, error) {
	if req.StaffID != nil {
		staff, err := uc.salonClient.GetStaff(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, salonservice.ErrStaffNotFound) {
				return nil, fmt.Errorf("%w: staffID=%d", ErrStaffNotFound, *req.StaffID)
			}
			uc.log.Error("CreateAppointment: failed to fetch staff %d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: fetch staff: %v", ErrInternal, err)
		}
		if staff.SalonID != req.SalonID {
			return nil, fmt.Errorf("%w: staffID=%d, salonID=%d", ErrStaffNotInSalon, staff.ID, req.SalonID)
		}
		if !canPerformAll(staff.ID, services) {
			return nil, fmt.Errorf("%w: staffID=%d", ErrStaffCannotPerform, staff.ID)
		}
		return []*salonservice.Staff{staff}, nil
	}

	allStaff, err := uc.salonClient.ListSalonStaff(ctx, req.SalonID)
	if err != nil {
		uc.log.Error("CreateAppointment: failed to list staff of salon %d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: list staff: %v", ErrInternal, err)
	}

	roster := make([]*salonservice.Staff, 0, len(allStaff))
	for _, staff := range allStaff {
		if !staff.Approved {
			continue
		}
		if !canPerformAll(staff.ID, services) {
			continue
		}
		roster = append(roster, staff)
	}
	return roster, nil
}
