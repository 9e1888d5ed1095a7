package bungee

import (
	"context"

	"go.uber.org/fx"

	"github.com/chanbridge/go-chanbridge/config"
	"github.com/chanbridge/go-chanbridge/internal/core/metrics"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
)

// Params 应答器依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Directory  pkgif.Directory
	Registrar  pkgif.ChannelRegistrar
	Metrics    metrics.Reporter `optional:"true"`
	EventBus   pkgif.EventBus   `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("bungee",
		fx.Provide(ProvideResponder),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideResponder 提供兼容协议应答器
func ProvideResponder(p Params) (*Responder, error) {
	return New(p.Directory, p.Registrar,
		WithConfig(ConfigFromUnified(p.UnifiedCfg)),
		WithMetrics(p.Metrics),
		WithEventBus(p.EventBus),
	)
}

type lifecycleInput struct {
	fx.In

	LC        fx.Lifecycle
	Responder *Responder
}

func registerLifecycle(in lifecycleInput) {
	in.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return in.Responder.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return in.Responder.Stop(ctx)
		},
	})
}
