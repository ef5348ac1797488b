package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	log, err := Setup(Config{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.Same(t, log, slog.Default())
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"", slog.LevelInfo, slog.LevelDebug}, // empty defaults to info
	}

	for _, tc := range tests {
		t.Run("level "+tc.level, func(t *testing.T) {
			log, err := Setup(Config{Level: tc.level})
			require.NoError(t, err)

			ctx := context.Background()
			assert.True(t, log.Enabled(ctx, tc.enabled))
			assert.False(t, log.Enabled(ctx, tc.muted))
		})
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup(Config{Level: "verbose"})
	assert.Error(t, err)
}

func TestContextRoundtrip(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), base)
	assert.Same(t, base, FromContext(ctx))

	// Without a logger in the context the default is returned.
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), base)
	assert.Same(t, base, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
}
