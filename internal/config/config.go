package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// (например, BOOKING_DATABASE_PASSWORD, BOOKING_AUTH_JWT_SECRET)
const EnvPrefix = "BOOKING"

var (
	// ErrLoadConfig ошибка чтения конфигурации
	ErrLoadConfig = errors.New("config: failed to load")
	// ErrInvalidConfig ошибка валидации конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Auth         AuthConfig         `toml:"auth"`
	Identity     IdentityConfig     `toml:"identity"`
	Redis        RedisConfig        `toml:"redis"`
	RabbitMQ     RabbitMQConfig     `toml:"rabbitmq"`
	Availability AvailabilityConfig `toml:"availability"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// AuthConfig настройки аутентификации.
// Пустой JWTSecret означает доверие заголовкам X-User-ID / X-User-Role от gateway.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" split_words:"true"`
}

// IdentityConfig настройки клиента сервиса пользователей (таймаут в секундах)
type IdentityConfig struct {
	URL     string `toml:"url" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"`
}

// RedisConfig настройки кэша свободных окон
type RedisConfig struct {
	Enabled    bool   `toml:"enabled" split_words:"true"`
	Addr       string `toml:"addr" split_words:"true"`
	Password   string `toml:"password" split_words:"true"`
	DB         int    `toml:"db" split_words:"true"`
	TTLSeconds int    `toml:"ttl_seconds" split_words:"true"`
}

// TTL время жизни записи кэша
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// RabbitMQConfig настройки публикации доменных событий
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

// AvailabilityConfig операционное окно по умолчанию, если для crew нет расписания
type AvailabilityConfig struct {
	DayStart       string `toml:"day_start" split_words:"true"`
	DayEnd         string `toml:"day_end" split_words:"true"`
	QuantumMinutes int    `toml:"quantum_minutes" split_words:"true"`
}

// Load читает config.toml, применяет переопределения из окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: env overrides: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "crew-booking",
		},
		Identity: IdentityConfig{
			Timeout: 5,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 300,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "crew_booking.events",
		},
		Availability: AvailabilityConfig{
			DayStart: "00:00",
			DayEnd:   "24:00",
		},
	}
}

// Validate проверяет корректность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns exceeds max_open_conns", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	if c.Redis.Enabled && c.Redis.TTLSeconds <= 0 {
		return fmt.Errorf("%w: redis.ttl_seconds must be positive", ErrInvalidConfig)
	}

	if c.RabbitMQ.Enabled && (c.RabbitMQ.URL == "" || c.RabbitMQ.Exchange == "") {
		return fmt.Errorf("%w: rabbitmq url and exchange are required when enabled", ErrInvalidConfig)
	}

	dayStart, dayEnd, err := c.Availability.Window()
	if err != nil {
		return fmt.Errorf("%w: availability: %v", ErrInvalidConfig, err)
	}
	if !dayStart.IsBefore(dayEnd) {
		return fmt.Errorf("%w: availability.day_start must be before day_end", ErrInvalidConfig)
	}

	if c.Availability.QuantumMinutes < 0 {
		return fmt.Errorf("%w: availability.quantum_minutes must not be negative", ErrInvalidConfig)
	}

	return nil
}

// Window разбирает операционное окно по умолчанию
func (a AvailabilityConfig) Window() (types.TimeOfDay, types.TimeOfDay, error) {
	start, err := types.ParseTimeOfDay(a.DayStart)
	if err != nil {
		return 0, 0, err
	}
	end, err := types.ParseTimeOfDay(a.DayEnd)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Quantum квант нарезки окон по умолчанию (0 - без нарезки)
func (a AvailabilityConfig) Quantum() time.Duration {
	return time.Duration(a.QuantumMinutes) * time.Minute
}
