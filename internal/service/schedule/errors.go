package schedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("schedule request not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrStaffNotInSalon возвращается, когда мастер не работает в салоне
	ErrStaffNotInSalon = errors.New("staff does not belong to salon")

	// ErrOverlappingRequest возвращается при пересечении с другой активной заявкой
	ErrOverlappingRequest = errors.New("overlapping schedule request exists")

	// ErrAlreadyDecided возвращается при попытке повторно решить заявку
	ErrAlreadyDecided = errors.New("schedule request already decided")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
