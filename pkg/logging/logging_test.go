package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(zap.New(core)).With("curve", "y^2 = x^3 + 2x + 2 mod 17")
	ctx := context.Background()

	logger.Debug(ctx, "enumerating", "p", 17)
	logger.Info(ctx, "done", "points", 18)
	logger.Warn(ctx, "singular curve")
	logger.Error(ctx, "failed", Redacted("m"))

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "enumerating", entries[0].Message)
	assert.Equal(t, int64(17), entries[0].ContextMap()["p"])
	assert.Equal(t, "y^2 = x^3 + 2x + 2 mod 17", entries[0].ContextMap()["curve"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, Placeholder(), entries[3].ContextMap()["m"])
}

func TestNopAndDefault(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		Nop().Info(ctx, "discarded")
		New(nil).With("k", "v").Debug(ctx, "discarded by zap.L()")
	})
}
