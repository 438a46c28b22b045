package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// generateCandidateStarts генерирует стартовые времена слотов с шагом granularity.
// Слот должен целиком помещаться в интервал [open, close)
func generateCandidateStarts(open, closeAt types.TimeString, durationMinutes, granularityMinutes int) []types.TimeString {
	openMin, err := open.Minutes()
	if err != nil {
		return nil
	}
	closeMin, err := closeAt.Minutes()
	if err != nil {
		return nil
	}

	var starts []types.TimeString
	for m := openMin; m+durationMinutes <= closeMin; m += granularityMinutes {
		start, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		starts = append(starts, start)
	}

	return starts
}

// staffWorkInterval возвращает рабочий интервал мастера на дату,
// ограниченный часами работы салона. false - мастер в этот день не работает
func staffWorkInterval(staff *salonservice.Staff, weekday time.Weekday, salonOpen, salonClose types.TimeString) (domain.TimeInterval, bool) {
	open, closeAt, ok := staff.Schedule.Day(weekday).WorkInterval()
	if !ok {
		return domain.TimeInterval{}, false
	}

	// Пересечение смены мастера с часами работы салона
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

// firstFreeStaff возвращает первого мастера из списка, который работает в интервале
// candidate и не занят в нём. Порядок списка определяет приоритет назначения.
// nil - свободных мастеров нет
func firstFreeStaff(
	candidate domain.TimeInterval,
	roster []*salonservice.Staff,
	weekday time.Weekday,
	salonOpen, salonClose types.TimeString,
	occupancy map[int64][]domain.TimeInterval,
) *salonservice.Staff {
	for _, staff := range roster {
		shift, ok := staffWorkInterval(staff, weekday, salonOpen, salonClose)
		if !ok {
			continue
		}

		if !shift.Contains(candidate) {
			continue
		}

		if domain.OverlapsAny(candidate, occupancy[staff.ID]) {
			continue
		}

		return staff
	}

	return nil
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

// totalDuration суммарная длительность услуг в минутах
func totalDuration(services []*salonservice.Service) int {
	total := 0
	for _, svc := range services {
		total += svc.DurationMinutes
	}
	return total
}

// minStartForToday возвращает минимально допустимое время начала слота,
// если date - сегодня: текущее время плюс minNotice. Иначе - ноль (без ограничения)
func minStartForToday(date, now time.Time, minNoticeMinutes int) types.TimeString {
	if !sameDay(date, now) {
		return types.TimeString("")
	}

	earliest := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if !sameDay(date, earliest) {
		// Граница ушла за полночь - сегодня слотов уже нет
		return types.TimeString("23:59")
	}

	minutes := earliest.Hour()*60 + earliest.Minute()
	if earliest.Second() > 0 || earliest.Nanosecond() > 0 {
		minutes++
	}
	if minutes > 23*60+59 {
		minutes = 23*60 + 59
	}

	ts, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		return types.TimeString("23:59")
	}
	return ts
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
