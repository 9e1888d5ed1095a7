package bungee

import (
	"time"

	"github.com/chanbridge/go-chanbridge/internal/core/metrics"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
)

// Option 应答器选项
type Option func(*Responder)

// WithConfig 设置配置
func WithConfig(cfg Config) Option {
	return func(r *Responder) {
		r.cfg = cfg
	}
}

// WithEnabled 开启或关闭兼容通道
func WithEnabled(enabled bool) Option {
	return func(r *Responder) {
		r.cfg.Enabled = enabled
	}
}

// WithConnectTimeout 设置切服请求超时
func WithConnectTimeout(d time.Duration) Option {
	return func(r *Responder) {
		r.cfg.ConnectTimeout = d
	}
}

// WithMetrics 设置指标记录器
func WithMetrics(m metrics.Reporter) Option {
	return func(r *Responder) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithEventBus 每处理一条兼容消息发射一次 types.EvtCompatCommand
func WithEventBus(bus pkgif.EventBus) Option {
	return func(r *Responder) {
		r.bus = bus
	}
}
