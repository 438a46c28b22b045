package domain

import (
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AvailableSlot кандидат на время начала записи
// Слот валиден, если вся длительность услуг помещается в рабочие часы
// и интервал не пересекается ни с одной записью/отпуском мастера
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	StaffID         *int64 // Мастер, свободный в этот слот (first-fit); nil не бывает в ответах
}

// Interval возвращает интервал [start, start+duration)
func (s *AvailableSlot) Interval() (TimeInterval, error) {
	end, err := s.StartTime.AddMinutes(s.DurationMinutes)
	if err != nil {
		return TimeInterval{}, err
	}
	return TimeInterval{Start: s.StartTime, End: end}, nil
}
