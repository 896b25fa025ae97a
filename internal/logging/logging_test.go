package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		for _, format := range []string{"console", "json"} {
			t.Run(tt.level+"/"+format, func(t *testing.T) {
				l, err := New(tt.level, format)
				require.NoError(t, err)
				assert.True(t, l.Core().Enabled(tt.want))
				if tt.want > zapcore.DebugLevel {
					assert.False(t, l.Core().Enabled(tt.want-1))
				}
			})
		}
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}
