package checkintoken

import "errors"

var (
	// ErrTokenNotFound возвращается, когда токен не найден
	ErrTokenNotFound = errors.New("checkintoken.repository: token not found")

	// ErrDuplicateToken возвращается при коллизии кода токена
	ErrDuplicateToken = errors.New("checkintoken.repository: duplicate token code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("checkintoken.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("checkintoken.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("checkintoken.repository: failed to scan row")
)
