package config

import (
	"errors"
	"time"

	"go.uber.org/multierr"
)

// MessagingConfig 插件消息配置
type MessagingConfig struct {
	// BungeePluginChannelEnabled 是否响应 BungeeCord 兼容通道
	//
	// 关闭后兼容通道上的消息不再被消费，原样转发给客户端。
	BungeePluginChannelEnabled bool `json:"bungee_plugin_channel_enabled" yaml:"bungee_plugin_channel_enabled" env:"BUNGEE_PLUGIN_CHANNEL_ENABLED"`

	// ModernChannelProtocol 使用 namespace:path 通道名的最低协议版本
	ModernChannelProtocol int `json:"modern_channel_protocol" yaml:"modern_channel_protocol" env:"MODERN_CHANNEL_PROTOCOL"`

	// ConnectTimeout Connect/ConnectOther 发起的切服请求超时
	ConnectTimeout Duration `json:"connect_timeout" yaml:"connect_timeout" env:"CONNECT_TIMEOUT"`
}

// DefaultMessagingConfig 返回默认插件消息配置
func DefaultMessagingConfig() MessagingConfig {
	return MessagingConfig{
		BungeePluginChannelEnabled: true,
		ModernChannelProtocol:      393,
		ConnectTimeout:             Duration(30 * time.Second),
	}
}

// Validate 验证插件消息配置
func (c MessagingConfig) Validate() error {
	var err error
	if c.ModernChannelProtocol <= 0 {
		err = multierr.Append(err, errors.New("messaging: modern_channel_protocol must be positive"))
	}
	if c.ConnectTimeout < 0 {
		err = multierr.Append(err, errors.New("messaging: connect_timeout must not be negative"))
	}
	return err
}
