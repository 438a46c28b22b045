package domain

// Значения конфигурации по умолчанию
const (
	DefaultSlotGranularityMinutes  = 15
	DefaultAdvanceBookingDays      = 30
	DefaultMinBookingNoticeMinutes = 0

	// Политика отмены по умолчанию
	DefaultEarlyThresholdHours = 24
	DefaultLateFeePercent      = 50.0
	DefaultNoShowFeePercent    = 100.0

	// Токены регистрации прибытия
	DefaultTokenTTLMinutes = 120

	// Panic mode
	DefaultPanicRadiusKm      = 5.0
	DefaultPanicWithinMinutes = 30
	MaxPanicRadiusKm          = 50.0
	MaxPanicWithinMinutes     = 24 * 60
)

// Бизнес-ограничения
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 120
	MaxServicesPerAppointment = 10
	MaxNotesLength            = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы записей, не занимающих время в календаре
// Используются при построении занятых интервалов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusRejected,
}

// ActiveStatuses статусы записей, занимающих время в календаре
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
	StatusCompleted,
}
