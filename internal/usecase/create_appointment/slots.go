package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// staffWorkInterval возвращает рабочий интервал мастера на дату,
// ограниченный часами работы салона. false - мастер в этот день не работает
func staffWorkInterval(staff *salonservice.Staff, weekday time.Weekday, salonOpen, salonClose types.TimeString) (domain.TimeInterval, bool) {
	open, closeAt, ok := staff.Schedule.Day(weekday).WorkInterval()
	if !ok {
		return domain.TimeInterval{}, false
	}

	if salonOpen.IsAfter(open) {
		open = salonOpen
	}
	if closeAt.IsAfter(salonClose) {
		closeAt = salonClose
	}
	if !open.IsBefore(closeAt) {
		return domain.TimeInterval{}, false
	}

	return domain.TimeInterval{Start: open, End: closeAt}, true
}

// canPerformAll проверяет, что мастер выполняет все перечисленные услуги.
// Пустой список мастеров у услуги означает "любой мастер салона"
func canPerformAll(staffID int64, services []*salonservice.Service) bool {
	for _, svc := range services {
		if len(svc.StaffIDs) == 0 {
			continue
		}

		found := false
		for _, id := range svc.StaffIDs {
			if id == staffID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// buildOccupancy собирает занятые интервалы каждого мастера из активных
// записей и одобренных заявок на отсутствие
func buildOccupancy(
	appointments []*domain.Appointment,
	requests []*domain.ScheduleRequest,
	workDay domain.TimeInterval,
	date time.Time,
) map[int64][]domain.TimeInterval {
	occupancy := make(map[int64][]domain.TimeInterval)

	for _, appt := range appointments {
		if appt.StaffID == nil || !appt.OccupiesCalendar() {
			continue
		}
		interval, err := appt.Interval()
		if err != nil {
			continue
		}
		occupancy[*appt.StaffID] = append(occupancy[*appt.StaffID], interval)
	}

	for _, req := range requests {
		if !req.CoversDate(date) {
			continue
		}
		blocked := req.BlockedInterval(workDay)
		occupancy[req.StaffID] = append(occupancy[req.StaffID], blocked)
	}

	return occupancy
}
