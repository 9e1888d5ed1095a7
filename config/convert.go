package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "CHANBRIDGE_"

// FromJSON 从 JSON 数据创建配置，未出现的字段保留默认值
//
// 示例 JSON:
//
//	{
//	  "messaging": {"bungee_plugin_channel_enabled": false},
//	  "channels": {"remaps": {"wecui": "worldedit:cui"}}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// FromYAML 从 YAML 数据创建配置，未出现的字段保留默认值
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从文件加载配置
//
// .yaml/.yml 按 YAML 解析，其余按 JSON 解析。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return FromJSON(data)
	}
}

// ApplyEnv 用 CHANBRIDGE_* 环境变量覆盖配置
//
// 例如 CHANBRIDGE_MESSAGING_BUNGEE_PLUGIN_CHANNEL_ENABLED=false。
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ToJSON 序列化配置
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ToYAML 序列化配置
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
