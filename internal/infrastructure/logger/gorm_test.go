package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.input))
		})
	}
}

func TestNewGormLogger(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		gl := NewGormLogger(zap.NewNop(), gormlogger.Warn)

		assert.Equal(t, gormlogger.Warn, gl.logLevel)
		assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
		assert.True(t, gl.ignoreRecordNotFoundError)
	})

	t.Run("options override defaults", func(t *testing.T) {
		gl := NewGormLogger(zap.NewNop(), gormlogger.Info,
			WithSlowThreshold(time.Second),
			WithIgnoreRecordNotFoundError(false),
		)

		assert.Equal(t, time.Second, gl.slowThreshold)
		assert.False(t, gl.ignoreRecordNotFoundError)
	})
}

func TestGormLoggerLogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn)

	changed := gl.LogMode(gormlogger.Error)

	// Returns a copy; the original keeps its level.
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
	assert.Equal(t, gormlogger.Error, changed.(*GormLogger).logLevel)
}

func TestGormLoggerTrace(t *testing.T) {
	t.Run("silent level logs nothing", func(t *testing.T) {
		gl := NewGormLogger(zap.NewNop(), gormlogger.Silent)

		assert.NotPanics(t, func() {
			gl.Trace(context.Background(), time.Now(), func() (string, int64) {
				return "SELECT 1", 1
			}, nil)
		})
	})

	t.Run("record not found is ignored by default", func(t *testing.T) {
		gl := NewGormLogger(zap.NewNop(), gormlogger.Error)

		assert.NotPanics(t, func() {
			gl.Trace(context.Background(), time.Now(), func() (string, int64) {
				return "SELECT 1", 0
			}, gormlogger.ErrRecordNotFound)
		})
	})
}
