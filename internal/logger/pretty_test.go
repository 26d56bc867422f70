package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestCreatePrettyLoggerLevels(t *testing.T) {
	log, err := CreatePrettyLogger(false)
	if err != nil {
		t.Fatalf("CreatePrettyLogger() failed: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level enabled without the debug flag")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level disabled")
	}

	debugLog, err := CreatePrettyLogger(true)
	if err != nil {
		t.Fatalf("CreatePrettyLogger(debug) failed: %v", err)
	}
	if !debugLog.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level disabled with the debug flag")
	}
}

func TestCustomLevelEncoder(t *testing.T) {
	tests := []struct {
		level zapcore.Level
		want  string
	}{
		{zapcore.DebugLevel, "[DEBUG]"},
		{zapcore.InfoLevel, "[INFO]"},
		{zapcore.WarnLevel, "[WARN]"},
		{zapcore.ErrorLevel, "[ERROR]"},
		{zapcore.FatalLevel, "[FATAL]"},
	}

	for _, tt := range tests {
		enc := &stringArrayEncoder{}
		customLevelEncoder(tt.level, enc)
		if len(enc.values) != 1 || !strings.Contains(enc.values[0], tt.want) {
			t.Errorf("level %s encoded as %v, want substring %q", tt.level, enc.values, tt.want)
		}
	}
}

// stringArrayEncoder captures appended strings for encoder assertions.
type stringArrayEncoder struct {
	zapcore.PrimitiveArrayEncoder
	values []string
}

func (e *stringArrayEncoder) AppendString(s string) {
	e.values = append(e.values, s)
}
