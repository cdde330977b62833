package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
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

// DSN возвращает строку подключения к БД
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig настройки движка бронирований
type BookingConfig struct {
	// SlotStepMinutes шаг генерации кандидатов слотов
	SlotStepMinutes int `toml:"slot_step_minutes"`

	// ConflictPollAttempts количество чтений в conflict poll после записи заявки
	ConflictPollAttempts int `toml:"conflict_poll_attempts"`

	// ConflictPollIntervalMS пауза между чтениями conflict poll, миллисекунды
	ConflictPollIntervalMS int `toml:"conflict_poll_interval_ms"`

	// PhonePattern регулярное выражение национального формата мобильного номера
	PhonePattern string `toml:"phone_pattern"`

	// ProfileCacheTTLSeconds TTL кеша профилей на чтение
	// Кеш НИКОГДА не используется для списка бронирований
	ProfileCacheTTLSeconds int `toml:"profile_cache_ttl_seconds"`
}

// PollInterval возвращает интервал conflict poll как time.Duration
func (b *BookingConfig) PollInterval() time.Duration {
	return time.Duration(b.ConflictPollIntervalMS) * time.Millisecond
}

// ProfileCacheTTL возвращает TTL кеша профилей как time.Duration
func (b *BookingConfig) ProfileCacheTTL() time.Duration {
	return time.Duration(b.ProfileCacheTTLSeconds) * time.Second
}

// Load читает и валидирует конфигурацию из TOML файла
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

func (c *Config) applyDefaults() {
	if c.Booking.SlotStepMinutes == 0 {
		c.Booking.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if c.Booking.ConflictPollAttempts == 0 {
		c.Booking.ConflictPollAttempts = domain.DefaultConflictPollAttempts
	}
	if c.Booking.ConflictPollIntervalMS == 0 {
		c.Booking.ConflictPollIntervalMS = domain.DefaultConflictPollIntervalMS
	}
	if c.Booking.ProfileCacheTTLSeconds == 0 {
		c.Booking.ProfileCacheTTLSeconds = 60
	}
	if c.Booking.PhonePattern == "" {
		c.Booking.PhonePattern = domain.DefaultPhonePattern
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Booking.SlotStepMinutes < domain.MinSlotStepMinutes || c.Booking.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("config: booking.slot_step_minutes must be in [%d, %d]",
			domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if c.Booking.ConflictPollAttempts < 0 {
		return fmt.Errorf("config: booking.conflict_poll_attempts must not be negative")
	}
	return nil
}
