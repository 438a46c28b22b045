package find_nearest_salon

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req FindNearestSalonRequest) error {
	if req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be in [-90, 90]", ErrInvalidInput)
	}

	if req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be in [-180, 180]", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceId is required", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
	}

	if req.RadiusKm != nil {
		if *req.RadiusKm <= 0 || *req.RadiusKm > domain.MaxPanicRadiusKm {
			return fmt.Errorf("%w: radiusKm must be in (0, %.0f]", ErrInvalidInput, domain.MaxPanicRadiusKm)
		}
	}

	if req.WithinMinutes != nil {
		if *req.WithinMinutes <= 0 || *req.WithinMinutes > domain.MaxPanicWithinMinutes {
			return fmt.Errorf("%w: withinMinutes must be in (0, %d]", ErrInvalidInput, domain.MaxPanicWithinMinutes)
		}
	}

	return nil
}
