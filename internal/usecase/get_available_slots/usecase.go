package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
)

// Config параметры генерации слотов
type Config struct {
	SlotGranularityMinutes  int
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
}

// UseCase расчёт свободных слотов салона на дату
type UseCase struct {
	salonClient  SalonServiceClient
	calendar     CalendarService
	timeProvider TimeProvider
	cfg          Config
	log          Logger
}

// NewUseCase создаёт UseCase для расчёта свободных слотов
func NewUseCase(salonClient SalonServiceClient, calendar CalendarService, timeProvider TimeProvider, cfg Config, log Logger) *UseCase {
	return &UseCase{
		salonClient:  salonClient,
		calendar:     calendar,
		timeProvider: timeProvider,
		cfg:          cfg,
		log:          log,
	}
}

// Execute возвращает свободные слоты салона на дату для набора услуг.
// Если staffId не указан, каждому слоту назначается первый свободный мастер
func (uc *UseCase) Execute(ctx context.Context, req GetAvailableSlotsRequest) (*GetAvailableSlotsResponse, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверка даты: не в прошлом и не дальше горизонта бронирования
	if err := validateDate(req.Date, now, uc.cfg.AdvanceBookingDays); err != nil {
		return nil, err
	}

	// 3. Получение салона и проверка модерации
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonservice.ErrSalonNotFound) {
			return nil, fmt.Errorf("%w: salonID=%d", ErrSalonNotFound, req.SalonID)
		}
		uc.log.Error("GetAvailableSlots: failed to fetch salon %d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: fetch salon: %v", ErrInternal, err)
	}
	if !salon.IsApproved() {
		return nil, fmt.Errorf("%w: salonID=%d", ErrSalonNotApproved, req.SalonID)
	}

	// 4. Получение услуг и суммарной длительности
	services, err := uc.fetchServices(ctx, req.SalonID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	duration := totalDuration(services)

	// 5. Часы работы салона на запрошенный день
	weekday := req.Date.Weekday()
	salonOpen, salonClose, open := salon.WorkingHours.Day(weekday).WorkInterval()
	if !open {
		// Салон в этот день закрыт - слотов нет
		return &GetAvailableSlotsResponse{
			SalonID:         req.SalonID,
			Date:            req.Date,
			DurationMinutes: duration,
			Slots:           []domain.AvailableSlot{},
		}, nil
	}

	// 6. Формирование списка мастеров-кандидатов
	roster, err := uc.buildRoster(ctx, req, services)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return &GetAvailableSlotsResponse{
			SalonID:         req.SalonID,
			Date:            req.Date,
			DurationMinutes: duration,
			Slots:           []domain.AvailableSlot{},
		}, nil
	}

	// 7. Занятость мастеров на дату: записи + одобренные заявки на отсутствие
	staffIDs := make([]int64, 0, len(roster))
	for _, staff := range roster {
		staffIDs = append(staffIDs, staff.ID)
	}
	occupancy, err := uc.calendar.StaffOccupancy(ctx, req.SalonID, staffIDs, req.Date)
	if err != nil {
		uc.log.Error("GetAvailableSlots: failed to load occupancy for salon %d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: load occupancy: %v", ErrInternal, err)
	}

	// 8. Генерация кандидатов и назначение мастеров
	minStart := minStartForToday(req.Date, now, uc.cfg.MinBookingNoticeMinutes)

	slots := make([]domain.AvailableSlot, 0)
	for _, start := range generateCandidateStarts(salonOpen, salonClose, duration, uc.cfg.SlotGranularityMinutes) {
		if !minStart.IsZero() && start.IsBefore(minStart) {
			continue
		}

		end, err := start.AddMinutes(duration)
		if err != nil {
			break
		}
		candidate := domain.TimeInterval{Start: start, End: end}

		staff := firstFreeStaff(candidate, roster, weekday, salonOpen, salonClose, occupancy)
		if staff == nil {
			continue
		}

		staffID := staff.ID
		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: duration,
			StaffID:         &staffID,
		})
	}

	return &GetAvailableSlotsResponse{
		SalonID:         req.SalonID,
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
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
			uc.log.Error("GetAvailableSlots: failed to fetch service %d of salon %d: %v", serviceID, salonID, err)
			return nil, fmt.Errorf("%w: fetch service: %v", ErrInternal, err)
		}
		services = append(services, svc)
	}
	return services, nil
}

// buildRoster формирует упорядоченный список мастеров-кандидатов.
// Указанный staffId сужает список до одного мастера, иначе берутся все
// одобренные мастера салона, выполняющие все выбранные услуги.
// Порядок мастеров из SalonService стабилен - он задаёт приоритет назначения
func (uc *UseCase) buildRoster(ctx context.Context, req GetAvailableSlotsRequest, services []*salonservice.Service) ([]*salonservice.Staff, error) {
	if req.StaffID != nil {
		staff, err := uc.salonClient.GetStaff(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, salonservice.ErrStaffNotFound) {
				return nil, fmt.Errorf("%w: staffID=%d", ErrStaffNotFound, *req.StaffID)
			}
			uc.log.Error("GetAvailableSlots: failed to fetch staff %d: %v", *req.StaffID, err)
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
		uc.log.Error("GetAvailableSlots: failed to list staff of salon %d: %v", req.SalonID, err)
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
