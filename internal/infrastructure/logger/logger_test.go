package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"INFO", zapcore.InfoLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates json logger", func(t *testing.T) {
		logger, err := New(ProductionConfig())
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("debug level enables debug output", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = "debug"

		logger, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, logger.Check(zapcore.DebugLevel, "test"))
	})

	t.Run("info level suppresses debug output", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.Nil(t, logger.Check(zapcore.DebugLevel, "test"))
	})
}

func TestNewForEnvironment(t *testing.T) {
	t.Run("production uses json format", func(t *testing.T) {
		logger, err := NewForEnvironment("production")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("development uses console format", func(t *testing.T) {
		logger, err := NewForEnvironment("development")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})
}
