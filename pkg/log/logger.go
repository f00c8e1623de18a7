package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
)

// LevelEnvVar names the environment variable read by SetupFromEnv.
const LevelEnvVar = "COLORBAYES_LOG_LEVEL"

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr, LevelWarn)
)

// GetLogger returns the default logger of the installed provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// SetProvider replaces the global provider. Library warnings are routed to
// the new provider when it is zerolog-backed.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
	if zp, ok := p.(*ZerologProvider); ok {
		errors.SetZerologWarnFunc(zp.warn)
	} else {
		errors.SetZerologWarnFunc(nil)
	}
}

// SetupLogger installs a zerolog console provider writing to w.
func SetupLogger(loglevel string, w io.Writer) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}
	SetProvider(NewZerologProvider(w, level))
	return nil
}

// SetupFromEnv configures logging from COLORBAYES_LOG_LEVEL, defaulting to warn.
func SetupFromEnv(w io.Writer) error {
	level := os.Getenv(LevelEnvVar)
	if level == "" {
		level = "warn"
	}
	return SetupLogger(level, w)
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "must be one of debug, info, warn, error", level)
	}
}
