package channel

import (
	"github.com/chanbridge/go-chanbridge/config"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

// Config 频道注册表配置
type Config struct {
	// ModernThreshold 使用新式视图的最低协议版本
	ModernThreshold types.ProtocolVersion

	// Remaps 追加的旧式名称重映射
	Remaps map[string]string

	// Initial 启动时注册的频道
	Initial []string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		ModernThreshold: types.ModernChannelThreshold,
	}
}

// ConfigFromUnified 从统一配置创建频道配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		ModernThreshold: types.ProtocolVersion(cfg.Messaging.ModernChannelProtocol),
		Remaps:          cfg.Channels.Remaps,
		Initial:         cfg.Channels.Initial,
	}
}

// Options 转换为注册表选项
func (c Config) Options() []Option {
	opts := []Option{WithRemaps(c.Remaps)}
	if c.ModernThreshold > 0 {
		opts = append(opts, WithModernThreshold(c.ModernThreshold))
	}
	return opts
}
