package channel

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/chanbridge/go-chanbridge/config"
	ch "github.com/chanbridge/go-chanbridge/pkg/channel"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
)

// Params Registrar 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Registrar 模块输出
type Result struct {
	fx.Out

	Registrar        *Registrar
	ChannelRegistrar pkgif.ChannelRegistrar
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("channel",
		fx.Provide(
			ProvideConfig,
			ProvideRegistrar,
		),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideConfig 从统一配置提供频道配置
func ProvideConfig(p Params) Config {
	return ConfigFromUnified(p.UnifiedCfg)
}

type registrarInput struct {
	fx.In

	Config   Config
	EventBus pkgif.EventBus `optional:"true"`
}

// ProvideRegistrar 提供频道注册表
func ProvideRegistrar(in registrarInput) (Result, error) {
	opts := in.Config.Options()
	if in.EventBus != nil {
		opts = append(opts, WithEventBus(in.EventBus))
	}
	reg, err := NewRegistrar(opts...)
	if err != nil {
		return Result{}, err
	}
	return Result{Registrar: reg, ChannelRegistrar: reg}, nil
}

type lifecycleInput struct {
	fx.In

	LC        fx.Lifecycle
	Config    Config
	Registrar *Registrar
}

// registerLifecycle 启动时注册配置中的初始频道
func registerLifecycle(in lifecycleInput) {
	in.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if len(in.Config.Initial) == 0 {
				return nil
			}
			ids := make([]ch.Identifier, 0, len(in.Config.Initial))
			for _, raw := range in.Config.Initial {
				id, err := ch.FromID(raw)
				if err != nil {
					return fmt.Errorf("initial channel %q: %w", raw, err)
				}
				ids = append(ids, id)
			}
			if err := in.Registrar.Register(ids...); err != nil {
				return err
			}
			logger.Info("初始频道已注册", "count", len(ids))
			return nil
		},
	})
}
