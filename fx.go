package chanbridge

import (
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/chanbridge/go-chanbridge/config"
	corechan "github.com/chanbridge/go-chanbridge/internal/core/channel"
	"github.com/chanbridge/go-chanbridge/internal/core/eventbus"
	"github.com/chanbridge/go-chanbridge/internal/core/metrics"
	"github.com/chanbridge/go-chanbridge/internal/protocol/bungee"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：config → eventbus → metrics → channel → bungee
func buildFxApp(cfg *config.Config, opts *options, b *Bridge) *fx.App {
	modules := []fx.Option{
		// 配置与宿主对象注入
		fx.Supply(cfg),
		fx.Provide(func() pkgif.Directory { return opts.directory }),

		eventbus.Module(),
		metrics.Module,
		corechan.Module(),
		bungee.Module(),
	}

	if opts.registerer != nil {
		reg := opts.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	if opts.clock != nil {
		clk := opts.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}

	if len(opts.userFxOptions) > 0 {
		modules = append(modules, opts.userFxOptions...)
	}

	modules = append(modules,
		fx.Invoke(injectBridgeComponents(b)),
		fx.WithLogger(fxEventLogger(cfg.Log.FxEvents)),
	)

	return fx.New(modules...)
}

// fxEventLogger 默认丢弃 Fx 内部事件，调试时输出到开发模式 zap logger
func fxEventLogger(verbose bool) func() fxevent.Logger {
	return func() fxevent.Logger {
		if verbose {
			if zl, err := zap.NewDevelopment(); err == nil {
				return &fxevent.ZapLogger{Logger: zl}
			}
		}
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	}
}

// bridgeInjectParams Bridge 组件注入参数
type bridgeInjectParams struct {
	fx.In

	Bus       *eventbus.Bus
	Registrar *corechan.Registrar
	Responder *bungee.Responder
	Recorder  *metrics.Recorder `optional:"true"`
	Reporter  metrics.Reporter
}

// injectBridgeComponents 把 Fx 构造的组件交给 Bridge
func injectBridgeComponents(b *Bridge) func(bridgeInjectParams) {
	return func(p bridgeInjectParams) {
		b.bus = p.Bus
		b.registrar = p.Registrar
		b.responder = p.Responder
		b.recorder = p.Recorder
		b.reporter = p.Reporter
	}
}
