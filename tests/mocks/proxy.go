package mocks

import (
	"context"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.minekube.com/common/minecraft/component"

	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

// ============================================================================
// MockConn
// ============================================================================

// MockConn 模拟底层连接
type MockConn struct {
	ProtocolValue types.ProtocolVersion

	// 可覆盖的方法
	WriteFunc func(msg *types.PluginMessage) error

	mu      sync.Mutex
	written []*types.PluginMessage
}

// NewMockConn 创建指定协议版本的 MockConn
func NewMockConn(v types.ProtocolVersion) *MockConn {
	return &MockConn{ProtocolValue: v}
}

// Protocol 返回协议版本
func (c *MockConn) Protocol() types.ProtocolVersion {
	return c.ProtocolValue
}

// WritePluginMessage 记录写入的插件消息
func (c *MockConn) WritePluginMessage(msg *types.PluginMessage) error {
	if c.WriteFunc != nil {
		if err := c.WriteFunc(msg); err != nil {
			return err
		}
	}
	c.mu.Lock()
	c.written = append(c.written, msg.Clone())
	c.mu.Unlock()
	return nil
}

// Messages 返回已写入的插件消息
func (c *MockConn) Messages() []*types.PluginMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*types.PluginMessage(nil), c.written...)
}

// Reset 清空记录
func (c *MockConn) Reset() {
	c.mu.Lock()
	c.written = nil
	c.mu.Unlock()
}

// ============================================================================
// MockServerInfo / MockServer
// ============================================================================

// MockServerInfo 模拟服务器信息
type MockServerInfo struct {
	NameValue string
	AddrValue net.Addr
}

// Name 返回服务器名
func (i *MockServerInfo) Name() string { return i.NameValue }

// Addr 返回服务器地址
func (i *MockServerInfo) Addr() net.Addr { return i.AddrValue }

// MockServer 模拟已注册的后端服务器
type MockServer struct {
	Info *MockServerInfo

	// Backend 承载插件消息的连接，nil 表示没有玩家在线
	Backend *MockConn

	mu      sync.Mutex
	players []pkgif.Player
}

// NewMockServer 创建 MockServer
func NewMockServer(name string, addr net.Addr) *MockServer {
	return &MockServer{Info: &MockServerInfo{NameValue: name, AddrValue: addr}}
}

// ServerInfo 返回服务器信息
func (s *MockServer) ServerInfo() pkgif.ServerInfo { return s.Info }

// Players 返回连接到该服务器的玩家
func (s *MockServer) Players() []pkgif.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pkgif.Player(nil), s.players...)
}

// AddPlayer 把玩家加入服务器
func (s *MockServer) AddPlayer(p pkgif.Player) {
	s.mu.Lock()
	s.players = append(s.players, p)
	s.mu.Unlock()
}

// BackendConnection 返回后端连接
func (s *MockServer) BackendConnection() (pkgif.Conn, bool) {
	if s.Backend == nil {
		return nil, false
	}
	return s.Backend, true
}

// ============================================================================
// MockServerConnection
// ============================================================================

// MockServerConnection 模拟玩家到后端服务器的连接
type MockServerConnection struct {
	ServerValue pkgif.RegisteredServer
	PlayerValue pkgif.Player
	ConnValue   *MockConn
}

// Server 返回后端服务器
func (c *MockServerConnection) Server() pkgif.RegisteredServer { return c.ServerValue }

// Player 返回所属玩家
func (c *MockServerConnection) Player() pkgif.Player { return c.PlayerValue }

// Conn 返回底层连接
func (c *MockServerConnection) Conn() (pkgif.Conn, bool) {
	if c.ConnValue == nil {
		return nil, false
	}
	return c.ConnValue, true
}

// ============================================================================
// MockPlayer
// ============================================================================

// MockPlayer 模拟在线玩家
type MockPlayer struct {
	UsernameValue string
	IDValue       uuid.UUID
	AddrValue     net.Addr

	// Current 当前后端连接，nil 表示未连接
	Current *MockServerConnection

	// 可覆盖的方法
	ConnectFunc     func(ctx context.Context, target pkgif.RegisteredServer) error
	SendMessageFunc func(msg component.Component) error

	// ConnectAttempts 每次切服请求完成后写入目标服务器名
	ConnectAttempts chan string

	mu          sync.Mutex
	messages    []component.Component
	disconnects []component.Component
}

// NewMockPlayer 创建带有默认值的 MockPlayer
func NewMockPlayer(username string) *MockPlayer {
	return &MockPlayer{
		UsernameValue:   username,
		IDValue:         uuid.New(),
		AddrValue:       &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000},
		ConnectAttempts: make(chan string, 16),
	}
}

// Username 返回用户名
func (p *MockPlayer) Username() string { return p.UsernameValue }

// ID 返回 UUID
func (p *MockPlayer) ID() uuid.UUID { return p.IDValue }

// RemoteAddr 返回远端地址
func (p *MockPlayer) RemoteAddr() net.Addr { return p.AddrValue }

// CurrentServer 返回当前后端连接
func (p *MockPlayer) CurrentServer() pkgif.ServerConnection {
	if p.Current == nil {
		return nil
	}
	return p.Current
}

// CreateConnectionRequest 创建切服请求
func (p *MockPlayer) CreateConnectionRequest(target pkgif.RegisteredServer) pkgif.ConnectionRequest {
	return &MockConnectionRequest{player: p, target: target}
}

// SendMessage 记录聊天消息
func (p *MockPlayer) SendMessage(msg component.Component) error {
	if p.SendMessageFunc != nil {
		if err := p.SendMessageFunc(msg); err != nil {
			return err
		}
	}
	p.mu.Lock()
	p.messages = append(p.messages, msg)
	p.mu.Unlock()
	return nil
}

// Disconnect 记录断开原因
func (p *MockPlayer) Disconnect(reason component.Component) {
	p.mu.Lock()
	p.disconnects = append(p.disconnects, reason)
	p.mu.Unlock()
}

// Messages 返回收到的聊天消息
func (p *MockPlayer) Messages() []component.Component {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]component.Component(nil), p.messages...)
}

// Disconnects 返回断开原因
func (p *MockPlayer) Disconnects() []component.Component {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]component.Component(nil), p.disconnects...)
}

// ============================================================================
// MockConnectionRequest
// ============================================================================

// MockConnectionRequest 模拟切服请求
type MockConnectionRequest struct {
	player *MockPlayer
	target pkgif.RegisteredServer
}

// Server 返回目标服务器
func (r *MockConnectionRequest) Server() pkgif.RegisteredServer { return r.target }

// Connect 调用玩家的 ConnectFunc 并记录目标
func (r *MockConnectionRequest) Connect(ctx context.Context) error {
	var err error
	if r.player.ConnectFunc != nil {
		err = r.player.ConnectFunc(ctx, r.target)
	}
	select {
	case r.player.ConnectAttempts <- r.target.ServerInfo().Name():
	default:
	}
	return err
}

// ============================================================================
// MockDirectory
// ============================================================================

// MockDirectory 模拟代理目录
type MockDirectory struct {
	mu      sync.RWMutex
	players []*MockPlayer
	servers []*MockServer
}

// NewMockDirectory 创建空目录
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{}
}

// AddPlayer 添加在线玩家
func (d *MockDirectory) AddPlayer(username string) *MockPlayer {
	p := NewMockPlayer(username)
	d.mu.Lock()
	d.players = append(d.players, p)
	d.mu.Unlock()
	return p
}

// AddServer 注册后端服务器
func (d *MockDirectory) AddServer(name string, addr net.Addr) *MockServer {
	s := NewMockServer(name, addr)
	d.mu.Lock()
	d.servers = append(d.servers, s)
	d.mu.Unlock()
	return s
}

// Join 让玩家连接到服务器并返回对应的后端连接
//
// 服务器还没有 Backend 时使用这条连接。
func (d *MockDirectory) Join(p *MockPlayer, s *MockServer, v types.ProtocolVersion) *MockServerConnection {
	conn := NewMockConn(v)
	sc := &MockServerConnection{ServerValue: s, PlayerValue: p, ConnValue: conn}
	p.Current = sc
	s.AddPlayer(p)
	if s.Backend == nil {
		s.Backend = conn
	}
	return sc
}

// Player 按用户名查找玩家
func (d *MockDirectory) Player(username string) (pkgif.Player, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.players {
		if p.UsernameValue == username {
			return p, true
		}
	}
	return nil, false
}

// PlayerByID 按 UUID 查找玩家
func (d *MockDirectory) PlayerByID(id uuid.UUID) (pkgif.Player, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.players {
		if p.IDValue == id {
			return p, true
		}
	}
	return nil, false
}

// Players 返回所有在线玩家
func (d *MockDirectory) Players() []pkgif.Player {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]pkgif.Player, len(d.players))
	for i, p := range d.players {
		out[i] = p
	}
	return out
}

// PlayerCount 返回在线玩家数
func (d *MockDirectory) PlayerCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.players)
}

// Server 按名称查找服务器
func (d *MockDirectory) Server(name string) (pkgif.RegisteredServer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, s := range d.servers {
		if s.Info.NameValue == name {
			return s, true
		}
	}
	return nil, false
}

// Servers 返回所有服务器
func (d *MockDirectory) Servers() []pkgif.RegisteredServer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]pkgif.RegisteredServer, len(d.servers))
	for i, s := range d.servers {
		out[i] = s
	}
	return out
}

var (
	_ pkgif.Directory         = (*MockDirectory)(nil)
	_ pkgif.Player            = (*MockPlayer)(nil)
	_ pkgif.RegisteredServer  = (*MockServer)(nil)
	_ pkgif.ServerInfo        = (*MockServerInfo)(nil)
	_ pkgif.ServerConnection  = (*MockServerConnection)(nil)
	_ pkgif.Conn              = (*MockConn)(nil)
	_ pkgif.ConnectionRequest = (*MockConnectionRequest)(nil)
)
