// Package logger 提供统一的日志接口
//
// 支持通过环境变量配置日志级别：
//   - CHANBRIDGE_LOG_LEVEL: 设置日志级别，支持按子系统配置
//     格式: 子系统=级别,子系统=级别,默认级别
//     示例: protocol/bungee=debug,core/channel=warn,info
//   - CHANBRIDGE_LOG_FORMAT: 日志格式 (text 或 json)
//   - CHANBRIDGE_LOG_ADD_SOURCE: 是否输出源码位置
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogFormat 日志输出格式
type LogFormat int

const (
	// FormatText 文本格式（默认）
	FormatText LogFormat = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// ParseFormat 解析格式名称，未知名称按文本处理
func ParseFormat(name string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(name), "json") {
		return FormatJSON
	}
	return FormatText
}

// Config 日志配置
type Config struct {
	// DefaultLevel 默认日志级别
	DefaultLevel slog.Level

	// SubsystemLevels 各子系统的日志级别
	SubsystemLevels map[string]slog.Level

	// Format 输出格式
	Format LogFormat

	// AddSource 是否添加源码位置
	AddSource bool
}

// LevelForSubsystem 获取指定子系统的日志级别
func (c *Config) LevelForSubsystem(subsystem string) slog.Level {
	if level, ok := c.SubsystemLevels[subsystem]; ok {
		return level
	}
	return c.DefaultLevel
}

var (
	configMu    sync.RWMutex
	configCache *Config
)

// ConfigFromEnv 返回当前生效的配置
//
// 首次调用时从环境变量解析，之后返回缓存；Configure 会替换缓存。
func ConfigFromEnv() *Config {
	configMu.RLock()
	cfg := configCache
	configMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	configMu.Lock()
	defer configMu.Unlock()
	if configCache == nil {
		configCache = parseConfig()
	}
	return configCache
}

// Configure 用配置文件中的设置覆盖日志配置
//
// levelSpec 与 CHANBRIDGE_LOG_LEVEL 同格式；环境变量优先于这里的设置。
// 已创建的 Logger 会同步调整级别。
func Configure(levelSpec, format string) {
	cfg := defaultConfig()
	if levelSpec != "" {
		parseLevelConfig(cfg, levelSpec)
	}
	if format != "" {
		cfg.Format = ParseFormat(format)
	}
	applyEnv(cfg)

	configMu.Lock()
	configCache = cfg
	configMu.Unlock()

	handlers.Range(func(key, value any) bool {
		value.(*subsystemHandler).SetLevel(cfg.LevelForSubsystem(key.(string)))
		return true
	})
}

func defaultConfig() *Config {
	return &Config{
		DefaultLevel:    slog.LevelInfo,
		SubsystemLevels: make(map[string]slog.Level),
		Format:          FormatText,
		AddSource:       false,
	}
}

// parseConfig 解析环境变量配置
func parseConfig() *Config {
	cfg := defaultConfig()
	applyEnv(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if levelStr := os.Getenv("CHANBRIDGE_LOG_LEVEL"); levelStr != "" {
		parseLevelConfig(cfg, levelStr)
	}
	if formatStr := os.Getenv("CHANBRIDGE_LOG_FORMAT"); formatStr != "" {
		cfg.Format = ParseFormat(formatStr)
	}
	if addSourceStr := os.Getenv("CHANBRIDGE_LOG_ADD_SOURCE"); addSourceStr != "" {
		cfg.AddSource = addSourceStr != "false" && addSourceStr != "0"
	}
}

// parseLevelConfig 解析日志级别配置字符串
// 格式: subsystem=level,subsystem=level,defaultLevel
func parseLevelConfig(cfg *Config, levelStr string) {
	for _, part := range strings.Split(levelStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if subsystem, levelName, ok := strings.Cut(part, "="); ok {
			if level, ok := ParseLevel(strings.TrimSpace(levelName)); ok {
				cfg.SubsystemLevels[strings.TrimSpace(subsystem)] = level
			}
			continue
		}
		if level, ok := ParseLevel(part); ok {
			cfg.DefaultLevel = level
		}
	}
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ResetConfig 重置配置缓存（仅用于测试）
func ResetConfig() {
	configMu.Lock()
	configCache = nil
	configMu.Unlock()
}
