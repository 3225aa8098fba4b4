// Package logging configures the process-wide zerolog logger and adapts it
// to the service logging interface.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"innkeep/internal/core"
)

const (
	EnvLogLevel   = "INNKEEP_LOG_LEVEL"
	EnvLogJSON    = "INNKEEP_LOG_JSON"
	EnvLogNoColor = "INNKEEP_LOG_NOCOLOR"
)

// Profile selects a logging baseline before environment overrides.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var configureOnce sync.Once

// ConfigureRuntime applies the runtime profile.
func ConfigureRuntime() zerolog.Logger {
	return Configure(ProfileRuntime, os.Stderr)
}

// ConfigureTests applies the test profile.
func ConfigureTests(w io.Writer) zerolog.Logger {
	return Configure(ProfileTest, w)
}

// Configure builds the root logger once per process; later calls return a
// logger derived from the current global settings.
func Configure(profile Profile, w io.Writer) zerolog.Logger {
	configureOnce.Do(func() {
		level := zerolog.InfoLevel
		if profile == ProfileTest {
			level = zerolog.DebugLevel
		}
		if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
			level = lvl
		}
		zerolog.SetGlobalLevel(level)
	})
	if w == nil {
		w = os.Stderr
	}
	if !jsonEnabled() {
		w = zerolog.ConsoleWriter{Out: w, NoColor: noColor()}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func jsonEnabled() bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvLogJSON)))
	return err == nil && v
}

func noColor() bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvLogNoColor)))
	return err == nil && v
}

// serviceLogger adapts zerolog to the core logging interface.
type serviceLogger struct {
	log zerolog.Logger
}

// ForService wraps a zerolog logger for injection into the reservation
// service.
func ForService(log zerolog.Logger) core.Logger {
	return serviceLogger{log: log}
}

func (l serviceLogger) Infof(format string, args ...any)  { l.log.Info().Msgf(format, args...) }
func (l serviceLogger) Warnf(format string, args ...any)  { l.log.Warn().Msgf(format, args...) }
func (l serviceLogger) Errorf(format string, args ...any) { l.log.Error().Msgf(format, args...) }
