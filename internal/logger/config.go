package logger

import (
	"log/slog"
	"strings"
)

// Config describes the default logger. Level and Format are the raw LOG_LEVEL
// and LOG_FORMAT values; anything unrecognised falls back to info and text.
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// ForEnvironment returns the preset for env: JSON at info level in production,
// text at debug level with source locations everywhere else.
func ForEnvironment(env string) Config {
	if env == EnvironmentProduction {
		return Config{Level: "info", Format: FormatJSON, ServiceName: DefaultServiceName, Environment: env}
	}
	return Config{Level: "debug", Format: FormatText, ServiceName: DefaultServiceName, Environment: env, AddSource: true}
}

// LogLevel parses Level. "warning" is accepted for warn.
func (c Config) LogLevel() slog.Level {
	raw := strings.TrimSpace(c.Level)
	if strings.EqualFold(raw, "warning") {
		raw = "warn"
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

func (c Config) attrs() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
