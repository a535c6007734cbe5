package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// LogLevelEnv selects the diagnostic log level written to stderr
	LogLevelEnv     = "PURR_LOG_LEVEL"
	DefaultLogLevel = "error"
)

// Config holds the settings of one run
type Config struct {
	Number   bool
	LogLevel string
}

// Validate checks that the configuration can be used
func (c *Config) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

// Logger builds a text logger writing to w at the configured level
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func (c *Config) level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q for %s", c.LogLevel, LogLevelEnv)
	}
}
