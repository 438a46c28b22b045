package find_nearest_salon

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoAvailabilityFound в радиусе нет салона со свободным слотом в окне
	ErrNoAvailabilityFound = errors.New("no availability found within radius")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
