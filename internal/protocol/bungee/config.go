package bungee

import (
	"time"

	"github.com/chanbridge/go-chanbridge/config"
)

// Config 兼容协议应答器配置
type Config struct {
	// Enabled 是否响应兼容通道
	Enabled bool

	// ConnectTimeout Connect/ConnectOther 切服请求超时，0 表示不设超时
	ConnectTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		ConnectTimeout: 30 * time.Second,
	}
}

// ConfigFromUnified 从统一配置创建应答器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:        cfg.Messaging.BungeePluginChannelEnabled,
		ConnectTimeout: cfg.Messaging.ConnectTimeout.Duration(),
	}
}
