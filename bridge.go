package chanbridge

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/chanbridge/go-chanbridge/config"
	corechan "github.com/chanbridge/go-chanbridge/internal/core/channel"
	"github.com/chanbridge/go-chanbridge/internal/core/eventbus"
	"github.com/chanbridge/go-chanbridge/internal/core/metrics"
	"github.com/chanbridge/go-chanbridge/internal/protocol/bungee"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
	"github.com/chanbridge/go-chanbridge/pkg/lib/log"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

var logger = log.Logger("chanbridge")

const (
	// startTimeout Fx App 启动超时
	startTimeout = 30 * time.Second

	// closeTimeout Close 时的停止超时
	closeTimeout = 10 * time.Second
)

// Bridge 插件消息桥
//
// 持有频道注册表与兼容协议应答器，宿主代理在后端插件消息入口
// 调用 HandlePluginMessage。
type Bridge struct {
	cfg *config.Config
	app *fx.App

	// ────────────────────────────────────────────────────────────────────────
	// 组件（由 Fx 注入）
	// ────────────────────────────────────────────────────────────────────────

	bus       *eventbus.Bus
	registrar *corechan.Registrar
	responder *bungee.Responder
	recorder  *metrics.Recorder
	reporter  metrics.Reporter

	logFile *os.File

	mu      sync.Mutex
	started bool
	stopped bool
	closed  bool

	// running 供消息入口无锁读取，Start/Stop 期间不阻塞入站消息
	running atomic.Bool
}

// New 创建 Bridge
//
// 创建但不启动，需要调用 Start()。WithDirectory 必须提供。
//
// 示例：
//
//	bridge, err := chanbridge.New(
//	    chanbridge.WithDirectory(dir),
//	    chanbridge.WithRemap("WECUI", "worldedit:cui"),
//	)
func New(opts ...Option) (*Bridge, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	if o.directory == nil {
		return nil, ErrNoDirectory
	}

	cfg, err := o.resolveConfig()
	if err != nil {
		return nil, err
	}

	b := &Bridge{cfg: cfg}
	if err := b.setupLogging(); err != nil {
		return nil, err
	}

	b.app = buildFxApp(cfg, o, b)
	if err := b.app.Err(); err != nil {
		b.closeLogFile()
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return b, nil
}

// Start 创建并启动 Bridge
//
// 等价于 New() + (*Bridge).Start()。
func Start(ctx context.Context, opts ...Option) (*Bridge, error) {
	b, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := b.Start(ctx); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("start bridge: %w", err)
	}
	return b, nil
}

// setupLogging 应用日志配置，必须在构建 Fx 应用之前
func (b *Bridge) setupLogging() error {
	log.Configure(b.cfg.Log.Level, b.cfg.Log.Format)
	if b.cfg.Log.File == "" {
		return nil
	}
	f, err := os.OpenFile(b.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	b.logFile = f
	log.SetOutput(f)
	return nil
}

func (b *Bridge) closeLogFile() {
	if b.logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	_ = b.logFile.Close()
	b.logFile = nil
}

// Start 启动所有组件
//
// 启动时注册配置中的初始频道。
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || b.stopped {
		return ErrBridgeClosed
	}
	if b.started {
		return ErrAlreadyStarted
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := b.app.Start(startCtx); err != nil {
		logger.Error("Bridge 启动失败", "error", err)
		return fmt.Errorf("start: %w", err)
	}
	b.started = true
	b.running.Store(true)
	logger.Info("Bridge 已启动",
		"bungee", b.cfg.Messaging.BungeePluginChannelEnabled,
		"channels", b.registrar.Len())
	return nil
}

// Stop 停止所有组件
//
// 取消未完成的切服请求并关闭事件总线。Stop 之后不能再次 Start。
func (b *Bridge) Stop(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return ErrNotStarted
	}
	b.started = false
	b.stopped = true
	b.running.Store(false)
	if err := b.app.Stop(ctx); err != nil {
		logger.Warn("Bridge 停止时出错", "error", err)
		return fmt.Errorf("stop: %w", err)
	}
	logger.Info("Bridge 已停止")
	return nil
}

// Close 停止并释放资源，可重复调用
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	started := b.started
	b.started = false
	b.running.Store(false)
	b.mu.Unlock()

	var err error
	if started {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		err = multierr.Append(err, b.app.Stop(ctx))
	}
	b.closeLogFile()
	return err
}

// ════════════════════════════════════════════════════════════════════════════
//                              组件访问
// ════════════════════════════════════════════════════════════════════════════

// Config 返回生效的配置副本
func (b *Bridge) Config() *config.Config {
	return b.cfg.Clone()
}

// Registrar 返回频道注册表
func (b *Bridge) Registrar() pkgif.ChannelRegistrar {
	return b.registrar
}

// Responder 返回兼容协议应答器
func (b *Bridge) Responder() *bungee.Responder {
	return b.responder
}

// EventBus 返回事件总线
func (b *Bridge) EventBus() pkgif.EventBus {
	return b.bus
}

// Metrics 返回流量计数器，指标关闭时返回 nil
func (b *Bridge) Metrics() *metrics.ChannelCounter {
	if b.recorder == nil {
		return nil
	}
	return b.recorder.Counter()
}

// ════════════════════════════════════════════════════════════════════════════
//                              消息入口
// ════════════════════════════════════════════════════════════════════════════

// HandlePluginMessage 处理后端发往代理的插件消息
//
// 返回 true 表示消息已被消费，宿主不应再转发给客户端：
//   - 兼容通道消息交给 Responder，开启时总是被消费
//   - REGISTER/UNREGISTER 更新注册表后返回 false，继续流向客户端
//   - 其他消息返回 false
func (b *Bridge) HandlePluginMessage(origin pkgif.ServerConnection, msg *types.PluginMessage) bool {
	if msg == nil {
		return false
	}

	if !b.running.Load() {
		return false
	}

	if bungee.IsBungeeCordMessage(msg.Channel) {
		return b.responder.Process(origin, msg)
	}

	handled, err := b.registrar.HandleChannelMessage(msg)
	if handled {
		b.reporter.LogRecvMessage(msg.Channel, len(msg.Data))
		if err != nil {
			logger.Debug("频道注册消息处理失败", "channel", msg.Channel, "error", err)
		}
	}
	return false
}

// RegisterPacket 构造发往客户端的 REGISTER 消息
//
// 包含当前注册的全部频道，兼容通道开启时还会包含兼容通道。
// 没有任何频道时返回 nil。
func (b *Bridge) RegisterPacket(v types.ProtocolVersion) *types.PluginMessage {
	ids := b.registrar.ChannelsForProtocol(v)
	if b.responder.Enabled() {
		compat := b.responder.ChannelForProtocol(v)
		found := false
		for _, id := range ids {
			if id == compat {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, compat)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return b.registrar.ChannelsPacket(v, ids)
}
