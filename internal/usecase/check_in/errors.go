package check_in

import "errors"

var (
	// ErrTokenFormatInvalid код не соответствует формату (3 буквы + 3 цифры)
	ErrTokenFormatInvalid = errors.New("token format is invalid")

	// ErrTokenNotFound токен не найден
	ErrTokenNotFound = errors.New("token not found")

	// ErrTokenExpired срок действия токена истёк
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenAlreadyConsumed токен уже был предъявлен
	ErrTokenAlreadyConsumed = errors.New("token already consumed")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
