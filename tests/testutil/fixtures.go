// Package testutil 提供测试辅助工具
package testutil

import (
	"net"
	"testing"

	"github.com/chanbridge/go-chanbridge/pkg/types"
	"github.com/chanbridge/go-chanbridge/tests/mocks"
)

// 测试数据固件
//
// 提供测试中常用的常量值，确保测试一致性。

const (
	// LobbyServer 默认来源服务器
	LobbyServer = "lobby"

	// GameServer 第二台服务器
	GameServer = "game"

	// Alice 位于 LobbyServer 的玩家，使用新式频道名的协议版本
	Alice = "alice"

	// Bob 位于 GameServer 的玩家，使用旧式频道名的协议版本
	Bob = "bob"
)

var (
	// LobbyAddr LobbyServer 的地址
	LobbyAddr = &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 25565}

	// GameAddr GameServer 的地址
	GameAddr = &net.TCPAddr{IP: net.IPv4(10, 0, 0, 2), Port: 25566}

	// AliceAddr Alice 的客户端地址
	AliceAddr = &net.TCPAddr{IP: net.IPv4(192, 168, 1, 5), Port: 40000}
)

// Proxy 两台服务器、两名玩家的标准代理目录
type Proxy struct {
	Dir   *mocks.MockDirectory
	Lobby *mocks.MockServer
	Game  *mocks.MockServer
	Alice *mocks.MockPlayer
	Bob   *mocks.MockPlayer

	// AliceConn Alice 到 Lobby 的连接（1.13）
	AliceConn *mocks.MockServerConnection

	// BobConn Bob 到 Game 的连接（1.12.2）
	BobConn *mocks.MockServerConnection
}

// ProxyBuilder 测试代理目录构建器
type ProxyBuilder struct {
	t           *testing.T
	aliceProto  types.ProtocolVersion
	bobProto    types.ProtocolVersion
	withoutGame bool
}

// NewProxy 创建测试代理目录构建器
//
// 示例:
//
//	p := testutil.NewProxy(t).Build()
//	responder.Process(p.AliceConn, msg)
func NewProxy(t *testing.T) *ProxyBuilder {
	return &ProxyBuilder{
		t:          t,
		aliceProto: types.Minecraft_1_13,
		bobProto:   types.Minecraft_1_12_2,
	}
}

// WithAliceProtocol 设置 Alice 连接的协议版本
func (b *ProxyBuilder) WithAliceProtocol(v types.ProtocolVersion) *ProxyBuilder {
	b.aliceProto = v
	return b
}

// WithBobProtocol 设置 Bob 连接的协议版本
func (b *ProxyBuilder) WithBobProtocol(v types.ProtocolVersion) *ProxyBuilder {
	b.bobProto = v
	return b
}

// WithoutGame 只创建 Lobby 与 Alice
func (b *ProxyBuilder) WithoutGame() *ProxyBuilder {
	b.withoutGame = true
	return b
}

// Build 构建代理目录
func (b *ProxyBuilder) Build() *Proxy {
	b.t.Helper()

	dir := mocks.NewMockDirectory()
	p := &Proxy{Dir: dir}
	p.Lobby = dir.AddServer(LobbyServer, LobbyAddr)
	p.Alice = dir.AddPlayer(Alice)
	p.Alice.AddrValue = AliceAddr
	p.AliceConn = dir.Join(p.Alice, p.Lobby, b.aliceProto)

	if !b.withoutGame {
		p.Game = dir.AddServer(GameServer, GameAddr)
		p.Bob = dir.AddPlayer(Bob)
		p.BobConn = dir.Join(p.Bob, p.Game, b.bobProto)
	}
	return p
}
