package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	log := Logger("test")
	log.Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "subsystem=test")
}

func TestSetOutput_ExistingLogger(t *testing.T) {
	log := Logger("test2")

	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	log.Info("after switch", "key", "value")
	assert.Contains(t, buf.String(), "after switch")
}

func TestSetLevel_SharedWithDerivedLoggers(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	derived := Logger("test-level").With("conn", "c1")
	SetLevel("test-level", slog.LevelError)
	derived.Info("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	SetLevel("test-level", slog.LevelDebug)
	derived.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestParseLevelConfig(t *testing.T) {
	cfg := defaultConfig()
	parseLevelConfig(cfg, "protocol/bungee=debug, core/channel=warn ,error")

	assert.Equal(t, slog.LevelError, cfg.DefaultLevel)
	assert.Equal(t, slog.LevelDebug, cfg.LevelForSubsystem("protocol/bungee"))
	assert.Equal(t, slog.LevelWarn, cfg.LevelForSubsystem("core/channel"))
	assert.Equal(t, slog.LevelError, cfg.LevelForSubsystem("other"))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CHANBRIDGE_LOG_LEVEL", "debug")
	t.Setenv("CHANBRIDGE_LOG_FORMAT", "json")
	ResetConfig()
	defer ResetConfig()

	cfg := ConfigFromEnv()
	assert.Equal(t, slog.LevelDebug, cfg.DefaultLevel)
	assert.Equal(t, FormatJSON, cfg.Format)
}

func TestConfigure(t *testing.T) {
	defer ResetConfig()

	Logger("test-configure")
	Configure("test-configure=error,info", "text")

	cfg := ConfigFromEnv()
	assert.Equal(t, slog.LevelInfo, cfg.DefaultLevel)
	assert.False(t, Logger("test-configure").Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, Logger("test-configure").Enabled(context.Background(), slog.LevelError))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
