package bungee

import (
	"encoding/hex"
	"fmt"
	"strings"

	"go.minekube.com/common/minecraft/component"

	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
)

// command 子命令处理函数，请求字段已按 RequestLayout 完整解码
type command func(r *Responder, origin pkgif.ServerConnection, m Message) error

var commands map[string]command

func init() {
	commands = map[string]command{
		SubForward:         (*Responder).forward,
		SubForwardToPlayer: (*Responder).forwardToPlayer,
		SubConnect:         (*Responder).connect,
		SubConnectOther:    (*Responder).connectOther,
		SubIP:              (*Responder).ip,
		SubIPOther:         (*Responder).ipOther,
		SubPlayerCount:     (*Responder).playerCount,
		SubPlayerList:      (*Responder).playerList,
		SubGetServers:      (*Responder).getServers,
		SubGetServer:       (*Responder).getServer,
		SubMessage:         (*Responder).message,
		SubMessageRaw:      (*Responder).messageRaw,
		SubUUID:            (*Responder).uuid,
		SubUUIDOther:       (*Responder).uuidOther,
		SubServerIP:        (*Responder).serverIP,
		SubKickPlayer:      (*Responder).kickPlayer,
	}
}

func isBroadcast(target string) bool {
	return target == TargetAll || target == TargetOnline
}

func (r *Responder) connect(origin pkgif.ServerConnection, m Message) error {
	server, ok := r.directory.Server(m.Str(0))
	if !ok || origin.Player() == nil {
		return nil
	}
	r.connectAsync(origin.Player(), server)
	return nil
}

func (r *Responder) connectOther(_ pkgif.ServerConnection, m Message) error {
	player, ok := r.directory.Player(m.Str(0))
	if !ok {
		return nil
	}
	server, ok := r.directory.Server(m.Str(1))
	if !ok {
		return nil
	}
	r.connectAsync(player, server)
	return nil
}

func (r *Responder) ip(origin pkgif.ServerConnection, _ Message) error {
	player := origin.Player()
	if player == nil {
		return nil
	}
	host, port := hostPort(player.RemoteAddr())
	return r.reply(origin, Message{
		Subcommand: SubIP,
		Fields:     []Field{UTF(host), Int(int32(port))},
	})
}

func (r *Responder) ipOther(origin pkgif.ServerConnection, m Message) error {
	player, ok := r.directory.Player(m.Str(0))
	if !ok {
		return nil
	}
	host, port := hostPort(player.RemoteAddr())
	return r.reply(origin, Message{
		Subcommand: SubIPOther,
		Fields:     []Field{UTF(player.Username()), UTF(host), Int(int32(port))},
	})
}

func (r *Responder) serverIP(origin pkgif.ServerConnection, m Message) error {
	server, ok := r.directory.Server(m.Str(0))
	if !ok {
		return nil
	}
	info := server.ServerInfo()
	host, port := hostPort(info.Addr())
	// ServerIP 的端口是 16 位，IP/IPOther 是 32 位
	return r.reply(origin, Message{
		Subcommand: SubServerIP,
		Fields:     []Field{UTF(info.Name()), UTF(host), Short(int16(uint16(port)))},
	})
}

func (r *Responder) playerCount(origin pkgif.ServerConnection, m Message) error {
	target := m.Str(0)
	if target == TargetAll {
		return r.reply(origin, Message{
			Subcommand: SubPlayerCount,
			Fields:     []Field{UTF(TargetAll), Int(int32(r.directory.PlayerCount()))},
		})
	}
	server, ok := r.directory.Server(target)
	if !ok {
		return nil
	}
	return r.reply(origin, Message{
		Subcommand: SubPlayerCount,
		Fields:     []Field{UTF(server.ServerInfo().Name()), Int(int32(len(server.Players())))},
	})
}

func (r *Responder) playerList(origin pkgif.ServerConnection, m Message) error {
	target := m.Str(0)
	if target == TargetAll {
		return r.reply(origin, Message{
			Subcommand: SubPlayerList,
			Fields:     []Field{UTF(TargetAll), UTF(joinUsernames(r.directory.Players()))},
		})
	}
	server, ok := r.directory.Server(target)
	if !ok {
		return nil
	}
	return r.reply(origin, Message{
		Subcommand: SubPlayerList,
		Fields:     []Field{UTF(server.ServerInfo().Name()), UTF(joinUsernames(server.Players()))},
	})
}

func (r *Responder) getServers(origin pkgif.ServerConnection, _ Message) error {
	servers := r.directory.Servers()
	names := make([]string, 0, len(servers))
	for _, s := range servers {
		names = append(names, s.ServerInfo().Name())
	}
	return r.reply(origin, Message{
		Subcommand: SubGetServers,
		Fields:     []Field{UTF(strings.Join(names, ", "))},
	})
}

func (r *Responder) getServer(origin pkgif.ServerConnection, _ Message) error {
	name := serverName(origin)
	if name == "" {
		return nil
	}
	return r.reply(origin, Message{
		Subcommand: SubGetServer,
		Fields:     []Field{UTF(name)},
	})
}

func (r *Responder) uuid(origin pkgif.ServerConnection, _ Message) error {
	player := origin.Player()
	if player == nil {
		return nil
	}
	return r.reply(origin, Message{
		Subcommand: SubUUID,
		Fields:     []Field{UTF(undashed(player))},
	})
}

func (r *Responder) uuidOther(origin pkgif.ServerConnection, m Message) error {
	player, ok := r.directory.Player(m.Str(0))
	if !ok {
		return nil
	}
	return r.reply(origin, Message{
		Subcommand: SubUUIDOther,
		Fields:     []Field{UTF(player.Username()), UTF(undashed(player))},
	})
}

func (r *Responder) message(_ pkgif.ServerConnection, m Message) error {
	text, err := r.legacyText.Unmarshal([]byte(m.Str(1)))
	if err != nil {
		return fmt.Errorf("%w: legacy text: %v", ErrMalformedPayload, err)
	}
	return r.deliver(m.Str(0), text)
}

func (r *Responder) messageRaw(_ pkgif.ServerConnection, m Message) error {
	text, err := r.jsonText.Unmarshal([]byte(m.Str(1)))
	if err != nil {
		return fmt.Errorf("%w: json text: %v", ErrMalformedPayload, err)
	}
	return r.deliver(m.Str(0), text)
}

// deliver 向 ALL 或指定玩家发送聊天消息
func (r *Responder) deliver(target string, text component.Component) error {
	if target == TargetAll {
		var failed int
		for _, p := range r.directory.Players() {
			if err := p.SendMessage(text); err != nil {
				failed++
				logger.Debug("发送消息失败", "player", p.Username(), "err", err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("message delivery failed for %d players", failed)
		}
		return nil
	}
	player, ok := r.directory.Player(target)
	if !ok {
		return nil
	}
	return player.SendMessage(text)
}

func (r *Responder) kickPlayer(_ pkgif.ServerConnection, m Message) error {
	reason, err := r.legacyText.Unmarshal([]byte(m.Str(1)))
	if err != nil {
		return fmt.Errorf("%w: legacy text: %v", ErrMalformedPayload, err)
	}
	player, ok := r.directory.Player(m.Str(0))
	if !ok {
		return nil
	}
	player.Disconnect(reason)
	return nil
}

// forward 把剩余字节转发给其他后端服务器
//
// ALL/ONLINE 发给除来源玩家当前服务器之外的所有服务器，否则只发给指定服务器。
// 没有玩家在线的服务器没有可用连接，消息被丢弃。
func (r *Responder) forward(origin pkgif.ServerConnection, m Message) error {
	target, payload := m.Str(0), m.RawAt(1)

	if !isBroadcast(target) {
		server, ok := r.directory.Server(target)
		if !ok {
			return nil
		}
		return r.sendToServer(server, payload)
	}

	exclude := ""
	if p := origin.Player(); p != nil {
		if cur := p.CurrentServer(); cur != nil && cur.Server() != nil {
			exclude = cur.Server().ServerInfo().Name()
		}
	}
	var firstErr error
	for _, server := range r.directory.Servers() {
		if exclude != "" && server.ServerInfo().Name() == exclude {
			continue
		}
		if err := r.sendToServer(server, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Responder) sendToServer(server pkgif.RegisteredServer, payload []byte) error {
	conn, ok := server.BackendConnection()
	if !ok {
		logger.Debug("服务器无可用连接，丢弃转发", "server", server.ServerInfo().Name())
		return nil
	}
	return r.write(conn, payload)
}

// forwardToPlayer 把剩余字节原样发到目标玩家当前的后端连接
func (r *Responder) forwardToPlayer(_ pkgif.ServerConnection, m Message) error {
	player, ok := r.directory.Player(m.Str(0))
	if !ok {
		return nil
	}
	return r.send(player.CurrentServer(), m.RawAt(1))
}

func joinUsernames(players []pkgif.Player) string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Username())
	}
	return strings.Join(names, ", ")
}

func undashed(p pkgif.Player) string {
	id := p.ID()
	return hex.EncodeToString(id[:])
}
