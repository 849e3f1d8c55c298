package task

import (
	"fmt"

	"github.com/on-the-ground/effect_ive_gen/effects"
	"github.com/on-the-ground/effect_ive_gen/effects/log"
)

// Log emits message at level.
func Log(level log.Level, message string) Task[Unit] {
	if t, ok := validated[Unit]("log", validLevel(level)); !ok {
		return t
	}
	return Void(FromEffect(effects.Log{Level: level, Message: message}))
}

// Info emits message at info level.
func Info(message string) Task[Unit] { return Log(log.LogInfo, message) }

// Warn emits message at warn level.
func Warn(message string) Task[Unit] { return Log(log.LogWarn, message) }

// Debug emits message at debug level.
func Debug(message string) Task[Unit] { return Log(log.LogDebug, message) }

// Error emits message at error level.
func Error(message string) Task[Unit] { return Log(log.LogError, message) }

func validLevel(level log.Level) error {
	if !level.Valid() {
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}
