// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义。
// 配置来源按优先级从低到高：
//   - NewConfig() 默认值
//   - 配置文件（JSON 或 YAML，LoadFile 按扩展名选择）
//   - CHANBRIDGE_* 环境变量（ApplyEnv）
//
// 使用示例：
//
//	cfg, err := config.LoadFile("chanbridge.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := config.ApplyEnv(cfg); err != nil {
//	    return err
//	}
//	cfg.Messaging.BungeePluginChannelEnabled = false
package config

// Config 是 chanbridge 的完整配置结构
//
//   - Messaging: 兼容协议开关与协议版本阈值
//   - Channels: 通道重映射表与初始注册集合
//   - Metrics: 指标收集
//   - Log: 日志级别与输出
type Config struct {
	// Messaging 插件消息配置
	Messaging MessagingConfig `json:"messaging" yaml:"messaging" envPrefix:"MESSAGING_"`

	// Channels 通道注册配置
	Channels ChannelsConfig `json:"channels" yaml:"channels" envPrefix:"CHANNELS_"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" envPrefix:"METRICS_"`

	// Log 日志配置
	Log LogConfig `json:"log" yaml:"log" envPrefix:"LOG_"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Messaging: DefaultMessagingConfig(),
		Channels:  DefaultChannelsConfig(),
		Metrics:   DefaultMetricsConfig(),
		Log:       DefaultLogConfig(),
	}
}

// Clone 返回配置的深拷贝
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Channels.Remaps != nil {
		out.Channels.Remaps = make(map[string]string, len(c.Channels.Remaps))
		for k, v := range c.Channels.Remaps {
			out.Channels.Remaps[k] = v
		}
	}
	out.Channels.Initial = append([]string(nil), c.Channels.Initial...)
	return &out
}
