package domain

import (
	"sort"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// TimeInterval полуинтервал [Start, End) внутри одного дня
// Полуинтервальная семантика исключает ложные конфликты соседних слотов:
// запись 10:00-10:30 не пересекается со слотом 10:30-11:00
type TimeInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps возвращает true, если интервалы действительно пересекаются
// Используются строгие неравенства - граничащие интервалы не считаются пересечением
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Contains возвращает true, если other целиком лежит внутри i
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.IsBefore(i.Start) && !i.End.IsBefore(other.End)
}

// SortIntervals сортирует интервалы по возрастанию времени начала
func SortIntervals(intervals []TimeInterval) {
	sort.Slice(intervals, func(a, b int) bool {
		return intervals[a].Start.IsBefore(intervals[b].Start)
	})
}

// OverlapsAny возвращает true, если candidate пересекается хотя бы с одним
// из интервалов occupied
func OverlapsAny(candidate TimeInterval, occupied []TimeInterval) bool {
	for _, interval := range occupied {
		if candidate.Overlaps(interval) {
			return true
		}
	}
	return false
}
