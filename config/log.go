package config

import (
	"fmt"
	"strings"
)

// LogConfig 日志配置
//
// Level 与 CHANBRIDGE_LOG_LEVEL 同格式: subsystem=level,...,default
type LogConfig struct {
	Level    string `json:"level,omitempty" yaml:"level,omitempty" env:"LEVEL"`
	Format   string `json:"format,omitempty" yaml:"format,omitempty" env:"FORMAT"`
	File     string `json:"file,omitempty" yaml:"file,omitempty" env:"FILE"`
	FxEvents bool   `json:"fx_events,omitempty" yaml:"fx_events,omitempty" env:"FX_EVENTS"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{Format: "text"}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("log: unsupported format %q", c.Format)
	}
}
