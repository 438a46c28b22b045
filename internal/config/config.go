package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Config конфигурация сервиса, загружаемая из config.toml
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	SalonService SalonServiceConfig `toml:"salonservice"`
	Booking      BookingConfig      `toml:"booking"`
	Cancellation CancellationConfig `toml:"cancellation"`
	CheckIn      CheckInConfig      `toml:"checkin"`
	PanicMode    PanicModeConfig    `toml:"panicmode"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SalonServiceConfig настройки клиента SalonService
type SalonServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig настройки бронирования слотов
type BookingConfig struct {
	SlotGranularityMinutes  int `toml:"slot_granularity_minutes"`
	AdvanceBookingDays      int `toml:"advance_booking_days"`
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
}

// CancellationConfig политика отмен
type CancellationConfig struct {
	EarlyThresholdHours int     `toml:"early_threshold_hours"`
	LateFeePercent      float64 `toml:"late_fee_percent"`
	NoShowFeePercent    float64 `toml:"no_show_fee_percent"`
}

// CheckInConfig настройки токенов регистрации прибытия
type CheckInConfig struct {
	TokenTTLMinutes        int `toml:"token_ttl_minutes"`
	CleanupIntervalMinutes int `toml:"cleanup_interval_minutes"`
}

// PanicModeConfig настройки поиска ближайшего салона
type PanicModeConfig struct {
	DefaultRadiusKm      float64 `toml:"default_radius_km"`
	DefaultWithinMinutes int     `toml:"default_within_minutes"`
}

// Load загружает конфигурацию из TOML файла и заполняет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults заполняет незаданные значения дефолтами
func (c *Config) applyDefaults() {
	if c.Booking.SlotGranularityMinutes == 0 {
		c.Booking.SlotGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	if c.Booking.AdvanceBookingDays == 0 {
		c.Booking.AdvanceBookingDays = domain.DefaultAdvanceBookingDays
	}
	if c.Cancellation.EarlyThresholdHours == 0 {
		c.Cancellation.EarlyThresholdHours = domain.DefaultEarlyThresholdHours
	}
	if c.Cancellation.LateFeePercent == 0 {
		c.Cancellation.LateFeePercent = domain.DefaultLateFeePercent
	}
	if c.Cancellation.NoShowFeePercent == 0 {
		c.Cancellation.NoShowFeePercent = domain.DefaultNoShowFeePercent
	}
	if c.CheckIn.TokenTTLMinutes == 0 {
		c.CheckIn.TokenTTLMinutes = domain.DefaultTokenTTLMinutes
	}
	if c.CheckIn.CleanupIntervalMinutes == 0 {
		c.CheckIn.CleanupIntervalMinutes = 10
	}
	if c.PanicMode.DefaultRadiusKm == 0 {
		c.PanicMode.DefaultRadiusKm = domain.DefaultPanicRadiusKm
	}
	if c.PanicMode.DefaultWithinMinutes == 0 {
		c.PanicMode.DefaultWithinMinutes = domain.DefaultPanicWithinMinutes
	}
}

// validate проверяет бизнес-ограничения конфигурации
func (c *Config) validate() error {
	if c.Booking.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		c.Booking.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("config: slot_granularity_minutes must be between %d and %d",
			domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if c.Cancellation.LateFeePercent < 0 || c.Cancellation.LateFeePercent > 100 {
		return fmt.Errorf("config: late_fee_percent must be between 0 and 100")
	}

	if c.Cancellation.NoShowFeePercent < 0 || c.Cancellation.NoShowFeePercent > 100 {
		return fmt.Errorf("config: no_show_fee_percent must be between 0 and 100")
	}

	if c.PanicMode.DefaultRadiusKm <= 0 || c.PanicMode.DefaultRadiusKm > domain.MaxPanicRadiusKm {
		return fmt.Errorf("config: default_radius_km must be between 0 and %v", domain.MaxPanicRadiusKm)
	}

	return nil
}
