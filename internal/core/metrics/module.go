package metrics

import (
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/chanbridge/go-chanbridge/config"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{Enabled: true}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{Enabled: cfg.Metrics.Enabled}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
	Clock      clock.Clock           `optional:"true"`
}

// Result Metrics 模块输出
//
// 指标关闭时 Recorder 为 nil，Reporter 为 NopReporter。
type Result struct {
	fx.Out

	Recorder *Recorder
	Reporter Reporter
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewFromParams),
)

// NewFromParams 从参数创建 Recorder
func NewFromParams(p Params) (Result, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return Result{Reporter: NopReporter{}}, nil
	}

	rec, err := NewRecorder(p.Registerer, p.Clock)
	if err != nil {
		return Result{}, err
	}
	return Result{Recorder: rec, Reporter: rec}, nil
}
