package issue_checkin_token

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAppointmentNotActive запись в конечном статусе, токен не нужен
	ErrAppointmentNotActive = errors.New("appointment is not active")

	// ErrAccessDenied запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("access denied")

	// ErrTokenGeneration не удалось сгенерировать уникальный токен
	ErrTokenGeneration = errors.New("failed to generate unique token")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
