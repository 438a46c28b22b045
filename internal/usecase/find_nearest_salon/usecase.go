package find_nearest_salon

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Config параметры срочного подбора по умолчанию
type Config struct {
	DefaultRadiusKm      float64
	DefaultWithinMinutes int
}

// candidate салон в радиусе поиска
type candidate struct {
	salon      *salonservice.Salon
	distanceKm float64
}

// UseCase срочный подбор ближайшего салона со свободным слотом
type UseCase struct {
	salonClient  SalonServiceClient
	slots        SlotsProvider
	timeProvider TimeProvider
	cfg          Config
	log          Logger
}

// NewUseCase создаёт UseCase срочного подбора салона
func NewUseCase(salonClient SalonServiceClient, slots SlotsProvider, timeProvider TimeProvider, cfg Config, log Logger) *UseCase {
	return &UseCase{
		salonClient:  salonClient,
		slots:        slots,
		timeProvider: timeProvider,
		cfg:          cfg,
		log:          log,
	}
}

// Execute возвращает ближайший к клиенту салон, у которого есть свободный
// слот на выбранные услуги в ближайшие withinMinutes минут. Кандидаты
// проверяются в порядке возрастания расстояния - первый подошедший побеждает,
// даже если у более далёкого салона слот раньше по времени
func (uc *UseCase) Execute(ctx context.Context, req FindNearestSalonRequest) (*FindNearestSalonResponse, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	radiusKm := uc.cfg.DefaultRadiusKm
	if req.RadiusKm != nil {
		radiusKm = *req.RadiusKm
	}
	withinMinutes := uc.cfg.DefaultWithinMinutes
	if req.WithinMinutes != nil {
		withinMinutes = *req.WithinMinutes
	}

	now := uc.timeProvider.Now()

	// 2. Выборка всех одобренных салонов и фильтрация по радиусу.
	// Салоны без координат в поиске не участвуют
	salons, err := uc.salonClient.ListApprovedSalons(ctx)
	if err != nil {
		uc.log.Error("FindNearestSalon: failed to list salons: %v", err)
		return nil, fmt.Errorf("%w: list salons: %v", ErrInternal, err)
	}

	candidates := make([]candidate, 0, len(salons))
	for _, salon := range salons {
		if !salon.HasCoordinates() {
			continue
		}
		dist := haversineKm(req.Latitude, req.Longitude, salon.Coordinates.Latitude, salon.Coordinates.Longitude)
		if dist > radiusKm {
			continue
		}
		candidates = append(candidates, candidate{salon: salon, distanceKm: dist})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: radiusKm=%.1f", ErrNoAvailabilityFound, radiusKm)
	}

	// 3. Сортировка по возрастанию расстояния
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].distanceKm < candidates[b].distanceKm
	})

	// 4. Проверка кандидатов по порядку: первый со слотом в окне побеждает
	windowEnd := now.Add(time.Duration(withinMinutes) * time.Minute)
	for _, cand := range candidates {
		slot, ok := uc.firstSlotInWindow(ctx, cand.salon.ID, req.ServiceIDs, now, windowEnd)
		if !ok {
			continue
		}

		uc.log.Info("FindNearestSalon: matched salon %d at %.2f km, slot %s",
			cand.salon.ID, cand.distanceKm, slot.StartTime)

		return &FindNearestSalonResponse{
			SalonID:    cand.salon.ID,
			SalonName:  cand.salon.Name,
			DistanceKm: cand.distanceKm,
			Date:       now,
			Slot:       *slot,
		}, nil
	}

	return nil, fmt.Errorf("%w: radiusKm=%.1f, withinMinutes=%d", ErrNoAvailabilityFound, radiusKm, withinMinutes)
}

// firstSlotInWindow возвращает первый свободный слот салона на сегодня,
// начинающийся в окне [now, windowEnd]. Салоны, не оказывающие услугу,
// и ошибки отдельных салонов не прерывают перебор
func (uc *UseCase) firstSlotInWindow(ctx context.Context, salonID int64, serviceIDs []int64, now, windowEnd time.Time) (*domain.AvailableSlot, bool) {
	resp, err := uc.slots.Execute(ctx, get_available_slots.GetAvailableSlotsRequest{
		SalonID:    salonID,
		ServiceIDs: serviceIDs,
		Date:       now,
	})
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrServiceNotFound),
			errors.Is(err, get_available_slots.ErrSalonNotFound),
			errors.Is(err, get_available_slots.ErrSalonNotApproved):
			// Салон не подходит - пропускаем молча
		default:
			uc.log.Warn("FindNearestSalon: slots lookup failed for salon %d: %v", salonID, err)
		}
		return nil, false
	}

	if !sameDay(now, windowEnd) {
		// Окно пересекает полночь - ограничиваем его концом дня
		windowEnd = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	}
	windowStart := types.NewTimeString(now)
	windowClose := types.NewTimeString(windowEnd)

	for _, slot := range resp.Slots {
		if slot.StartTime.IsBefore(windowStart) {
			continue
		}
		if slot.StartTime.IsAfter(windowClose) {
			// Слоты отсортированы по времени - дальше только позже
			break
		}
		found := slot
		return &found, true
	}

	return nil, false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
