package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// fullDayInterval интервал, блокирующий весь день
// Используется для отпусков без указания времени
var fullDayInterval = domain.TimeInterval{Start: "00:00", End: "23:59"}

// Service календарь занятости мастеров
// Чистая проекция над записями и одобренными заявками на отпуск:
// никаких побочных эффектов, результат отражает состояние хранилища
// на момент вызова (внутри транзакции - состояние транзакции)
type Service struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRequestRepository
	logger          Logger
}

// NewService создает новый календарь занятости
func NewService(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRequestRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		logger:          logger,
	}
}

// StaffOccupancy возвращает занятые интервалы [start, end) каждого мастера
// на указанную дату: активные записи плюс одобренные отпускные блоки
// Интервалы отсортированы по возрастанию времени начала
func (s *Service) StaffOccupancy(ctx context.Context, salonID int64, staffIDs []int64, date time.Time) (map[int64][]domain.TimeInterval, error) {
	occupancy := make(map[int64][]domain.TimeInterval, len(staffIDs))
	for _, staffID := range staffIDs {
		occupancy[staffID] = []domain.TimeInterval{}
	}

	if len(staffIDs) == 0 {
		return occupancy, nil
	}

	// Активные записи на дату
	filter := domain.StaffAppointmentsFilter{
		SalonID:         salonID,
		StaffIDs:        staffIDs,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	appointments, err := s.appointmentRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("StaffOccupancy: failed to get appointments: salon=%d, date=%s: %v",
			salonID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	for _, appt := range appointments {
		if appt.StaffID == nil || !appt.OccupiesCalendar() {
			continue
		}

		interval, err := appt.Interval()
		if err != nil {
			// Запись с некорректным временем не должна ломать весь календарь
			s.logger.Warn("StaffOccupancy: skipping appointment id=%d with invalid interval: %v", appt.ID, err)
			continue
		}

		occupancy[*appt.StaffID] = append(occupancy[*appt.StaffID], interval)
	}

	// Одобренные отпуска, затрагивающие дату
	requests, err := s.scheduleRepo.GetApprovedForStaffOnDate(ctx, staffIDs, date)
	if err != nil {
		s.logger.Error("StaffOccupancy: failed to get schedule requests: salon=%d, date=%s: %v",
			salonID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get schedule requests: %v", ErrInternal, err)
	}

	for _, req := range requests {
		if !req.CoversDate(date) {
			continue
		}
		occupancy[req.StaffID] = append(occupancy[req.StaffID], req.BlockedInterval(fullDayInterval))
	}

	for staffID := range occupancy {
		domain.SortIntervals(occupancy[staffID])
	}

	return occupancy, nil
}

// Occupied возвращает занятые интервалы одного мастера на дату
func (s *Service) Occupied(ctx context.Context, salonID, staffID int64, date time.Time) ([]domain.TimeInterval, error) {
	occupancy, err := s.StaffOccupancy(ctx, salonID, []int64{staffID}, date)
	if err != nil {
		return nil, err
	}
	return occupancy[staffID], nil
}
