package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/on-the-ground/effect_ive_gen/effects/log"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"info", "warn", "error", "debug"} {
		l, err := log.ParseLevel(s)
		require.NoError(t, err)
		assert.True(t, l.Valid())
	}

	l, err := log.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, log.LogInfo, l)

	_, err = log.ParseLevel("verbose")
	assert.Error(t, err)
	assert.False(t, log.Level("").Valid())
}

func TestEmit(t *testing.T) {
	logger, logs := log.NewObservedLogger()

	log.Emit(logger, log.LogWarn, "careful", map[string]any{"path": "a.txt"})
	log.Emit(logger, log.LogDebug, "details", nil)
	log.Emit(logger, "shout", "unknown level", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "a.txt", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
}
