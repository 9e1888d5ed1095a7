// Package interfaces 定义 chanbridge 公共接口
//
// 本文件定义代理目录相关接口。这些对象由宿主代理持有，
// chanbridge 只通过名称/ID 查询它们。
package interfaces

import (
	"context"
	"net"

	"github.com/google/uuid"
	"go.minekube.com/common/minecraft/component"

	"github.com/chanbridge/go-chanbridge/pkg/types"
)

// Directory 代理目录
//
// 查询未命中返回 (nil, false)，调用方把它当作无操作处理。
type Directory interface {
	// Player 按用户名查找在线玩家（大小写是否敏感由实现决定）
	Player(username string) (Player, bool)

	// PlayerByID 按 UUID 查找在线玩家
	PlayerByID(id uuid.UUID) (Player, bool)

	// Players 返回所有在线玩家
	Players() []Player

	// PlayerCount 返回在线玩家数
	PlayerCount() int

	// Server 按名称查找已注册的后端服务器
	Server(name string) (RegisteredServer, bool)

	// Servers 返回所有已注册的后端服务器
	Servers() []RegisteredServer
}

// Player 在线玩家
type Player interface {
	// Username 用户名
	Username() string

	// ID 玩家 UUID
	ID() uuid.UUID

	// RemoteAddr 客户端远端地址（*net.TCPAddr 或 *net.UnixAddr）
	RemoteAddr() net.Addr

	// CurrentServer 当前所在的后端连接，连接建立中或未连接时返回 nil
	CurrentServer() ServerConnection

	// CreateConnectionRequest 创建切换到目标服务器的请求
	CreateConnectionRequest(target RegisteredServer) ConnectionRequest

	// SendMessage 向玩家发送聊天消息
	SendMessage(msg component.Component) error

	// Disconnect 以指定原因断开玩家
	Disconnect(reason component.Component)
}

// ConnectionRequest 切换服务器请求
type ConnectionRequest interface {
	// Server 目标服务器
	Server() RegisteredServer

	// Connect 发起切换并等待结果
	Connect(ctx context.Context) error
}

// ServerInfo 后端服务器信息
type ServerInfo interface {
	// Name 服务器名称
	Name() string

	// Addr 服务器地址（*net.TCPAddr 或 *net.UnixAddr）
	Addr() net.Addr
}

// RegisteredServer 已注册的后端服务器
type RegisteredServer interface {
	// ServerInfo 服务器信息
	ServerInfo() ServerInfo

	// Players 当前连接到该服务器的玩家
	Players() []Player

	// BackendConnection 返回一条可以承载插件消息的后端连接
	//
	// 没有玩家连接到该服务器时返回 (nil, false)，此时插件消息无法送达。
	BackendConnection() (Conn, bool)
}

// ServerConnection 玩家与某个后端服务器之间的连接
type ServerConnection interface {
	// Server 对应的后端服务器
	Server() RegisteredServer

	// Player 连接所属玩家
	Player() Player

	// Conn 底层连接，未建立时返回 (nil, false)
	Conn() (Conn, bool)
}

// Conn 可以写入插件消息的底层连接
type Conn interface {
	// Protocol 已协商的协议版本
	Protocol() types.ProtocolVersion

	// WritePluginMessage 写入一个插件消息包
	WritePluginMessage(msg *types.PluginMessage) error
}
