package config

import (
	"fmt"

	"github.com/chanbridge/go-chanbridge/pkg/channel"
	"go.uber.org/multierr"
)

// ChannelsConfig 通道注册配置
type ChannelsConfig struct {
	// Remaps 追加的旧式通道名重映射，键为小写旧式名称，值为 namespace:path
	//
	// 环境变量格式: CHANBRIDGE_CHANNELS_REMAPS="wecui=worldedit:cui,fml=forge:handshake"
	Remaps map[string]string `json:"remaps,omitempty" yaml:"remaps,omitempty" env:"REMAPS" envKeyValSeparator:"="`

	// Initial 启动时注册的通道 ID
	Initial []string `json:"initial,omitempty" yaml:"initial,omitempty" env:"INITIAL"`
}

// DefaultChannelsConfig 返回默认通道配置
func DefaultChannelsConfig() ChannelsConfig {
	return ChannelsConfig{}
}

// Validate 验证通道配置
func (c ChannelsConfig) Validate() error {
	var err error
	for legacy, modern := range c.Remaps {
		if legacy == "" {
			err = multierr.Append(err, fmt.Errorf("channels: remap with empty legacy name"))
			continue
		}
		id, perr := channel.FromID(modern)
		if perr != nil || !id.IsModern() {
			err = multierr.Append(err, fmt.Errorf("channels: remap %q -> %q: target must be namespace:path", legacy, modern))
		}
	}
	for _, raw := range c.Initial {
		if _, perr := channel.FromID(raw); perr != nil {
			err = multierr.Append(err, fmt.Errorf("channels: initial %q: %w", raw, perr))
		}
	}
	return err
}
