package cancel_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Config параметры политики отмены
type Config struct {
	EarlyThresholdHours int
	LateFeePercent      float64
	NoShowFeePercent    float64
}

// classifyCancellation классифицирует отмену по времени до начала записи:
//   - за threshold и более часов - ранняя, без штрафа
//   - менее чем за threshold часов - поздняя, штраф lateFeePercent
//   - после начала без прибытия - no-show, штраф noShowFeePercent
//
// Клиент, успевший зарегистрировать прибытие, не считается no-show,
// даже если отмена пришла после времени начала
func classifyCancellation(start, cancelledAt time.Time, checkedIn bool, cfg Config) (domain.CancellationType, float64) {
	notice := start.Sub(cancelledAt)
	threshold := time.Duration(cfg.EarlyThresholdHours) * time.Hour

	switch {
	case notice >= threshold:
		return domain.CancellationEarly, 0

	case notice > 0:
		return domain.CancellationLate, cfg.LateFeePercent

	case checkedIn:
		return domain.CancellationLate, cfg.LateFeePercent

	default:
		return domain.CancellationNoShow, cfg.NoShowFeePercent
	}
}

// cancellationFee рассчитывает штраф от итоговой стоимости записи
func cancellationFee(amount, percent float64) float64 {
	if percent <= 0 || amount <= 0 {
		return 0
	}
	return amount * percent / 100
}
