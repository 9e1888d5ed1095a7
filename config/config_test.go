package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.True(t, cfg.Messaging.BungeePluginChannelEnabled)
	assert.Equal(t, 393, cfg.Messaging.ModernChannelProtocol)
	assert.Equal(t, 30*time.Second, cfg.Messaging.ConnectTimeout.Duration())
	assert.True(t, cfg.Metrics.Enabled)
}

// TestConfig_ValidateAggregates 多个错误一次性返回
func TestConfig_ValidateAggregates(t *testing.T) {
	cfg := NewConfig()
	cfg.Messaging.ModernChannelProtocol = 0
	cfg.Channels.Remaps = map[string]string{"wecui": "not-modern"}
	cfg.Channels.Initial = []string{""}
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrNilConfig)
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{
		"messaging": {"bungee_plugin_channel_enabled": false, "connect_timeout": "5s"},
		"channels": {"remaps": {"wecui": "worldedit:cui"}, "initial": ["BungeeCord"]}
	}`))
	require.NoError(t, err)

	assert.False(t, cfg.Messaging.BungeePluginChannelEnabled)
	assert.Equal(t, 393, cfg.Messaging.ModernChannelProtocol)
	assert.Equal(t, 5*time.Second, cfg.Messaging.ConnectTimeout.Duration())
	assert.Equal(t, "worldedit:cui", cfg.Channels.Remaps["wecui"])
	assert.Equal(t, []string{"BungeeCord"}, cfg.Channels.Initial)
	assert.NoError(t, cfg.Validate())

	_, err = FromJSON([]byte(`{"messaging": {"connect_timeout": true}}`))
	assert.Error(t, err)
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
messaging:
  modern_channel_protocol: 400
  connect_timeout: 1m
metrics:
  enabled: false
log:
  level: protocol/bungee=debug,info
`))
	require.NoError(t, err)

	assert.True(t, cfg.Messaging.BungeePluginChannelEnabled)
	assert.Equal(t, 400, cfg.Messaging.ModernChannelProtocol)
	assert.Equal(t, time.Minute, cfg.Messaging.ConnectTimeout.Duration())
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "protocol/bungee=debug,info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "chanbridge.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("metrics:\n  enabled: false\n"), 0o600))
	cfg, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.False(t, cfg.Metrics.Enabled)

	jsonPath := filepath.Join(dir, "chanbridge.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"metrics": {"enabled": false}}`), 0o600))
	cfg, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.False(t, cfg.Metrics.Enabled)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CHANBRIDGE_MESSAGING_BUNGEE_PLUGIN_CHANNEL_ENABLED", "false")
	t.Setenv("CHANBRIDGE_MESSAGING_CONNECT_TIMEOUT", "2s")
	t.Setenv("CHANBRIDGE_CHANNELS_REMAPS", "wecui=worldedit:cui,fml=forge:handshake")
	t.Setenv("CHANBRIDGE_CHANNELS_INITIAL", "BungeeCord,velocity:main")

	cfg := NewConfig()
	require.NoError(t, ApplyEnv(cfg))

	assert.False(t, cfg.Messaging.BungeePluginChannelEnabled)
	assert.Equal(t, 393, cfg.Messaging.ModernChannelProtocol)
	assert.Equal(t, 2*time.Second, cfg.Messaging.ConnectTimeout.Duration())
	assert.Equal(t, map[string]string{"wecui": "worldedit:cui", "fml": "forge:handshake"}, cfg.Channels.Remaps)
	assert.Equal(t, []string{"BungeeCord", "velocity:main"}, cfg.Channels.Initial)
	assert.True(t, cfg.Metrics.Enabled)

	assert.ErrorIs(t, ApplyEnv(nil), ErrNilConfig)
}

func TestConfig_Clone(t *testing.T) {
	cfg := NewConfig()
	cfg.Channels.Remaps = map[string]string{"a": "b:c"}
	cfg.Channels.Initial = []string{"x:y"}

	clone := cfg.Clone()
	clone.Channels.Remaps["a"] = "changed:value"
	clone.Channels.Initial[0] = "changed"

	assert.Equal(t, "b:c", cfg.Channels.Remaps["a"])
	assert.Equal(t, "x:y", cfg.Channels.Initial[0])
}
