package chanbridge

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/chanbridge/go-chanbridge/config"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 宿主代理目录（必需）
	directory pkgif.Directory

	// 基础配置，nil 表示使用默认值
	config *config.Config

	// 配置文件路径，加载后再叠加 CHANBRIDGE_* 环境变量
	configFile string

	// 覆盖项
	bungeeEnabled *bool
	remaps        map[string]string
	initial       []string
	logFile       string

	// 指标
	registerer prometheus.Registerer
	clock      clock.Clock

	// 用户自定义 Fx 选项
	userFxOptions []fx.Option
}

func newOptions() *options {
	return &options{}
}

// resolveConfig 合成最终配置
//
// 基础配置取 WithConfigFile 加载的文件，否则取 WithConfig，都没有时取默认值；
// 之后总是叠加 CHANBRIDGE_* 环境变量，最后应用显式选项。
func (o *options) resolveConfig() (*config.Config, error) {
	if o.config != nil && o.configFile != "" {
		return nil, fmt.Errorf("%w: WithConfig and WithConfigFile are mutually exclusive", ErrInvalidOption)
	}

	cfg := o.config.Clone()
	if o.configFile != "" {
		loaded, err := config.LoadFile(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		cfg = loaded
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("apply env: %w", err)
	}

	if o.bungeeEnabled != nil {
		cfg.Messaging.BungeePluginChannelEnabled = *o.bungeeEnabled
	}
	if len(o.remaps) > 0 {
		if cfg.Channels.Remaps == nil {
			cfg.Channels.Remaps = make(map[string]string, len(o.remaps))
		}
		for k, v := range o.remaps {
			cfg.Channels.Remaps[k] = v
		}
	}
	cfg.Channels.Initial = append(cfg.Channels.Initial, o.initial...)
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ============================================================================
//                              必需选项
// ============================================================================

// WithDirectory 设置宿主代理目录
//
// Responder 通过它按名称查找玩家和服务器。
func WithDirectory(dir pkgif.Directory) Option {
	return func(o *options) error {
		if dir == nil {
			return fmt.Errorf("%w: nil directory", ErrInvalidOption)
		}
		o.directory = dir
		return nil
	}
}

// ============================================================================
//                              配置选项
// ============================================================================

// WithConfig 使用完整配置作为基础
//
// 配置会被拷贝，调用方后续修改不影响 Bridge。之后同样叠加 CHANBRIDGE_* 环境变量。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("%w: nil config", ErrInvalidOption)
		}
		o.config = cfg.Clone()
		return nil
	}
}

// WithConfigFile 从 JSON 或 YAML 文件加载配置
//
// 按扩展名选择解码器，加载后叠加 CHANBRIDGE_* 环境变量。
// 不能与 WithConfig 同时使用。
func WithConfigFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return fmt.Errorf("%w: empty config path", ErrInvalidOption)
		}
		o.configFile = path
		return nil
	}
}

// WithBungeePluginChannel 开启或关闭 BungeeCord 兼容通道
func WithBungeePluginChannel(enabled bool) Option {
	return func(o *options) error {
		o.bungeeEnabled = &enabled
		return nil
	}
}

// WithRemap 添加一条旧式到新式的频道重映射
//
// 示例:
//
//	chanbridge.WithRemap("WECUI", "worldedit:cui")
func WithRemap(legacy, modern string) Option {
	return func(o *options) error {
		if legacy == "" || modern == "" {
			return fmt.Errorf("%w: empty remap %q -> %q", ErrInvalidOption, legacy, modern)
		}
		if o.remaps == nil {
			o.remaps = make(map[string]string)
		}
		o.remaps[legacy] = modern
		return nil
	}
}

// WithInitialChannels 启动时注册的频道（新式或旧式线上名称）
func WithInitialChannels(ids ...string) Option {
	return func(o *options) error {
		o.initial = append(o.initial, ids...)
		return nil
	}
}

// ============================================================================
//                              可观测性选项
// ============================================================================

// WithPrometheusRegisterer 把指标注册到指定的 Registerer
//
// 不设置时计数器仍然可用，只是不对外暴露。
func WithPrometheusRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = reg
		return nil
	}
}

// WithClock 设置流量速率统计使用的时钟
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		o.clock = clk
		return nil
	}
}

// WithLogFile 将日志输出重定向到指定文件
//
// 文件以追加模式打开，Close 时关闭。
func WithLogFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return fmt.Errorf("%w: 日志文件路径不能为空", ErrInvalidOption)
		}
		o.logFile = path
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
