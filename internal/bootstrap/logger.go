package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/config"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// SetupLogger installs the default slog logger, writing to stdout and to a new
// session file under cfg.LogDir. The caller closes the returned file.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, dirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLogDir, err)
	}

	cleanupLogs(cfg.LogDir, logRetentionCount)

	timestamp := time.Now().Format(logTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(logNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLogFile, err)
	}

	logCfg := logger.ForEnvironment(cfg.Environment)
	logCfg.Level, logCfg.Format = cfg.LogLevel, cfg.LogFormat
	logCfg.ServiceName, logCfg.Version = cfg.ServiceName, cfg.Version
	logger.InitLoggerWithWriter(logCfg, io.MultiWriter(os.Stdout, logFile))

	slog.Info(LogMsgLoggingInitialized, "log_level", logCfg.LogLevel().String(), "file", logFileName)
	slog.Info(LogMsgStartingApp,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"workers", cfg.WorkerCount)

	return logFile, nil
}

// cleanupLogs removes the oldest session logs so that at most keep remain
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), logExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}

	if len(logFiles) <= keep {
		return
	}

	// Timestamped names sort chronologically
	sort.Strings(logFiles)
	for _, name := range logFiles[:len(logFiles)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgOldLogNotRemoved, "file", name, "error", err)
		}
	}
}
