package log

import (
	"fmt"

	"go.uber.org/zap"
)

// Level defines the severity level for log messages.
type Level string

const (
	// LogInfo is used for general informational messages.
	LogInfo Level = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn Level = "warn"

	// LogError is used for error events that might still allow the generator to continue running.
	LogError Level = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug Level = "debug"
)

// ParseLevel converts a configuration string into a Level.
func ParseLevel(s string) (Level, error) {
	switch l := Level(s); l {
	case LogInfo, LogWarn, LogError, LogDebug:
		return l, nil
	case "":
		return LogInfo, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	_, err := ParseLevel(string(l))
	return err == nil && l != ""
}

// Emit writes a message to logger at the given level.
// Unknown levels are written at info.
func Emit(logger *zap.Logger, level Level, msg string, fields map[string]any) {
	zfields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zfields = append(zfields, zap.Any(k, v))
	}

	switch level {
	case LogInfo:
		logger.Info(msg, zfields...)
	case LogWarn:
		logger.Warn(msg, zfields...)
	case LogError:
		logger.Error(msg, zfields...)
	case LogDebug:
		logger.Debug(msg, zfields...)
	default:
		logger.Info(msg, zfields...)
	}
}

// Sync flushes logger, reporting a failed flush through the logger itself.
func Sync(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		logger.Warn("failed to sync logger", zap.Error(err))
	}
}
