package bungee

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.minekube.com/common/minecraft/component/codec"
	"go.minekube.com/common/minecraft/component/codec/legacy"

	"github.com/chanbridge/go-chanbridge/internal/core/metrics"
	"github.com/chanbridge/go-chanbridge/pkg/channelids"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
	"github.com/chanbridge/go-chanbridge/pkg/lib/log"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

var logger = log.Logger("protocol/bungee")

// Responder BungeeCord 兼容协议应答器
//
// 处理后端服务器在兼容通道上发来的子命令：查询玩家与服务器、
// 跨服消息、踢人以及原样转发。
type Responder struct {
	cfg       Config
	directory pkgif.Directory
	registrar pkgif.ChannelRegistrar
	metrics   metrics.Reporter
	bus       pkgif.EventBus
	emitter   pkgif.Emitter

	legacyText *legacy.Legacy
	jsonText   *codec.Json

	// ctx 约束所有异步切服请求，Stop 时取消
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
}

// New 创建应答器
func New(directory pkgif.Directory, registrar pkgif.ChannelRegistrar, opts ...Option) (*Responder, error) {
	if directory == nil {
		return nil, ErrNilDirectory
	}
	if registrar == nil {
		return nil, ErrNilRegistrar
	}

	r := &Responder{
		cfg:        DefaultConfig(),
		directory:  directory,
		registrar:  registrar,
		metrics:    metrics.NopReporter{},
		legacyText: &legacy.Legacy{Char: legacy.SectionChar},
		jsonText:   &codec.Json{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.bus != nil {
		em, err := r.bus.Emitter(new(types.EvtCompatCommand))
		if err != nil {
			return nil, fmt.Errorf("bungee: create emitter: %w", err)
		}
		r.emitter = em
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())
	return r, nil
}

// Start 启动应答器
func (r *Responder) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	r.started = true
	logger.Info("兼容通道应答器已启动", "enabled", r.cfg.Enabled)
	return nil
}

// Stop 取消未完成的切服请求并等待其退出
func (r *Responder) Stop(ctx context.Context) error {
	// 与 connectAsync 共用锁，取消之后不会再有新的 wg.Add
	r.mu.Lock()
	r.started = false
	r.cancel()
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enabled 兼容通道是否开启
func (r *Responder) Enabled() bool {
	return r.cfg.Enabled
}

// IsBungeeCordMessage 频道名是否为兼容通道（任一形式）
func IsBungeeCordMessage(channel string) bool {
	return channelids.BungeeCord.Matches(channel)
}

// ChannelForProtocol 指定协议版本下兼容通道的线上名称
func (r *Responder) ChannelForProtocol(v types.ProtocolVersion) string {
	return r.registrar.ChannelIDForProtocol(channelids.BungeeCordLegacy, v)
}

// RegisterPacket 构造向后端声明兼容通道的 REGISTER 消息
//
// 兼容通道关闭时返回 nil。
func (r *Responder) RegisterPacket(v types.ProtocolVersion) *types.PluginMessage {
	if !r.cfg.Enabled {
		return nil
	}
	return r.registrar.ChannelsPacket(v, []string{r.ChannelForProtocol(v)})
}

// Process 处理后端发来的插件消息
//
// 返回 true 表示消息已被消费，不应继续转发给客户端。
// 兼容通道关闭或频道不匹配时返回 false 且没有任何副作用。
// 没有来源连接的消息同样返回 false。
// 负载损坏、子命令未知或目标不存在都不会向调用方传播错误。
func (r *Responder) Process(origin pkgif.ServerConnection, msg *types.PluginMessage) bool {
	if !r.cfg.Enabled || msg == nil || !IsBungeeCordMessage(msg.Channel) {
		return false
	}
	if origin == nil {
		logger.Debug("兼容消息缺少来源连接，忽略", "channel", msg.Channel)
		return false
	}
	r.metrics.LogRecvMessage(msg.Channel, len(msg.Data))

	m, err := Decode(msg.Data, RequestLayout)
	switch {
	case errors.Is(err, ErrUnknownSubcommand):
		logger.Debug("忽略未知子命令", "subcommand", m.Subcommand, "server", serverName(origin))
		r.finish(origin, m.Subcommand, false, metrics.OutcomeUnknown, nil)
		return true
	case err != nil:
		logger.Warn("丢弃损坏的兼容消息", "subcommand", m.Subcommand, "server", serverName(origin), "err", err)
		r.finish(origin, m.Subcommand, true, metrics.OutcomeMalformed, err)
		return true
	}

	cmd := commands[m.Subcommand]
	if err := cmd(r, origin, m); err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, ErrMalformedPayload) {
			outcome = metrics.OutcomeMalformed
		}
		logger.Warn("兼容子命令处理失败", "subcommand", m.Subcommand, "server", serverName(origin), "err", err)
		r.finish(origin, m.Subcommand, true, outcome, err)
		return true
	}

	r.finish(origin, m.Subcommand, true, metrics.OutcomeHandled, nil)
	return true
}

func (r *Responder) finish(origin pkgif.ServerConnection, sub string, known bool, outcome string, err error) {
	r.metrics.LogCommand(sub, outcome)
	if r.emitter == nil {
		return
	}
	_ = r.emitter.Emit(types.EvtCompatCommand{
		BaseEvent:  types.NewBaseEvent(types.EventCompatCommand),
		Subcommand: sub,
		Server:     serverName(origin),
		Known:      known,
		Err:        err,
	})
}

// reply 在来源连接上写回应答
func (r *Responder) reply(origin pkgif.ServerConnection, m Message) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return r.send(origin, data)
}

// send 把负载写到某个玩家的后端连接上
func (r *Responder) send(sc pkgif.ServerConnection, data []byte) error {
	if sc == nil {
		return nil
	}
	conn, ok := sc.Conn()
	if !ok {
		logger.Debug("后端连接不可用，丢弃应答", "server", serverName(sc))
		return nil
	}
	return r.write(conn, data)
}

func (r *Responder) write(conn pkgif.Conn, data []byte) error {
	channel := r.ChannelForProtocol(conn.Protocol())
	if err := conn.WritePluginMessage(types.NewPluginMessage(channel, data)); err != nil {
		return fmt.Errorf("write plugin message: %w", err)
	}
	r.metrics.LogSentMessage(channel, len(data))
	return nil
}

// connectAsync 异步发起切服请求，结果只记录日志
func (r *Responder) connectAsync(player pkgif.Player, server pkgif.RegisteredServer) {
	req := player.CreateConnectionRequest(server)
	if req == nil {
		return
	}

	r.mu.Lock()
	if r.ctx.Err() != nil {
		r.mu.Unlock()
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		ctx := r.ctx
		if r.cfg.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.cfg.ConnectTimeout)
			defer cancel()
		}
		if err := req.Connect(ctx); err != nil {
			logger.Debug("切服请求失败",
				"player", player.Username(),
				"server", server.ServerInfo().Name(),
				"err", err)
		}
	}()
}

func serverName(sc pkgif.ServerConnection) string {
	if sc == nil || sc.Server() == nil {
		return ""
	}
	return sc.Server().ServerInfo().Name()
}
