package get_available_slots

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrSalonNotFound салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrSalonNotApproved салон не прошёл модерацию
	ErrSalonNotApproved = errors.New("salon not approved")

	// ErrServiceNotFound услуга не найдена в салоне
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffNotFound мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrStaffNotInSalon мастер не работает в этом салоне
	ErrStaffNotInSalon = errors.New("staff does not belong to salon")

	// ErrStaffCannotPerform мастер не выполняет выбранную услугу
	ErrStaffCannotPerform = errors.New("staff cannot perform requested service")

	// ErrDateInPast дата в прошлом
	ErrDateInPast = errors.New("date is in the past")

	// ErrDateTooFar дата дальше горизонта бронирования
	ErrDateTooFar = errors.New("date is beyond the booking horizon")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
