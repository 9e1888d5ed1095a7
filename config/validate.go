package config

import (
	"errors"

	"go.uber.org/multierr"
)

// ErrNilConfig 配置为空
var ErrNilConfig = errors.New("config: nil config")

// Validate 验证配置有效性，返回所有子配置错误的合集
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	return multierr.Combine(
		c.Messaging.Validate(),
		c.Channels.Validate(),
		c.Log.Validate(),
	)
}
