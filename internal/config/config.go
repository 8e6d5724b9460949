package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration. The env tag names double as
// field names in validation errors.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"quest-academy"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`

	DBUser     string `env:"DB_USER" envDefault:"postgres" validate:"required"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost" validate:"required"`
	DBPort     string `env:"DB_PORT" envDefault:"5432" validate:"numeric"`
	DBName     string `env:"DB_NAME" envDefault:"questacademy" validate:"required"`

	DBMaxConns           int           `env:"DB_MAX_CONNS" envDefault:"20" validate:"min=1"`
	DBMaxConnIdleTime    time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime    time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	DBSlowQueryThreshold time.Duration `env:"DB_SLOW_QUERY_THRESHOLD" envDefault:"500ms"`
	RunMigrations        bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	APIKey         string   `env:"API_KEY" validate:"required"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," validate:"dive,ip"`

	WorkerCount              int           `env:"WORKER_COUNT" envDefault:"4"`
	AchievementSweepSchedule string        `env:"ACHIEVEMENT_SWEEP_SCHEDULE" envDefault:"*/15 * * * *" validate:"required"`
	AchievementCacheTTL      time.Duration `env:"ACHIEVEMENT_CACHE_TTL" envDefault:"10m" validate:"gt=0"`
	RespecSessionTTL         time.Duration `env:"RESPEC_SESSION_TTL" envDefault:"15m" validate:"gt=0"`

	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" envDefault:"3" validate:"min=0"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	EventDeadLetterPath string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s" validate:"gt=0"`

	EventLogRetentionDays   int    `env:"EVENT_LOG_RETENTION_DAYS" envDefault:"90"`
	EventLogCleanupSchedule string `env:"EVENT_LOG_CLEANUP_SCHEDULE" envDefault:"0 3 * * *" validate:"required"`
}

// Load reads .env (when present) and the environment, applies fallbacks and validates the result
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.EventLogRetentionDays < 1 {
		cfg.EventLogRetentionDays = DefaultEventLogRetentionDays
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string for DBName
func (c *Config) GetDBConnString() string {
	return c.connString(c.DBName)
}

// AdminConnString targets the server's maintenance database, used to create
// and drop DBName
func (c *Config) AdminConnString() string {
	return c.connString(adminDatabase)
}

func (c *Config) connString(database string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
