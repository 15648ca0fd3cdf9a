package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"retrolog/internal/platform/config"
	"retrolog/internal/platform/logging"
)

func TestNewRespectsLevel(t *testing.T) {
	t.Parallel()
	logger, err := logging.New(config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug must be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn must be enabled at warn level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, err := logging.New(config.LogConfig{Level: "loud", Format: "console"}); err == nil {
		t.Fatalf("expected parse error")
	}
}
