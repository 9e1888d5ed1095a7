package channelids

import (
	"github.com/chanbridge/go-chanbridge/pkg/channel"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

// ============================================================================
// BungeeCord 兼容频道
// ============================================================================

// BungeeCordModern 兼容频道的新式形式
var BungeeCordModern = channel.MustFromKey("bungeecord", "main")

// BungeeCordLegacy 兼容频道的旧式形式
var BungeeCordLegacy = channel.MustLegacy("BungeeCord")

// ============================================================================
// 频道注册协议
// ============================================================================

// RegisterModern 1.13+ 的频道注册频道
var RegisterModern = channel.MustFromKey("minecraft", "register")

// RegisterLegacy 旧版本的频道注册频道
var RegisterLegacy = channel.MustLegacy("REGISTER")

// UnregisterModern 1.13+ 的频道注销频道
var UnregisterModern = channel.MustFromKey("minecraft", "unregister")

// UnregisterLegacy 旧版本的频道注销频道
var UnregisterLegacy = channel.MustLegacy("UNREGISTER")

// ============================================================================
// 其他内置频道
// ============================================================================

// BrandModern 1.13+ 的客户端品牌频道
var BrandModern = channel.MustFromKey("minecraft", "brand")

// BrandLegacy 旧版本的客户端品牌频道
var BrandLegacy = channel.MustLegacy("MC|Brand")

// Pair 同一频道的新旧两种形式
type Pair struct {
	Modern channel.Identifier
	Legacy channel.Identifier
}

// ForProtocol 按协议版本选择线上频道名
func (p Pair) ForProtocol(v types.ProtocolVersion) string {
	if v.UsesModernChannels() {
		return p.Modern.ID()
	}
	return p.Legacy.ID()
}

// Matches 检查频道名是否为任一形式
func (p Pair) Matches(id string) bool {
	return id == p.Modern.ID() || id == p.Legacy.ID()
}

// 内置频道对
var (
	BungeeCord = Pair{Modern: BungeeCordModern, Legacy: BungeeCordLegacy}
	Register   = Pair{Modern: RegisterModern, Legacy: RegisterLegacy}
	Unregister = Pair{Modern: UnregisterModern, Legacy: UnregisterLegacy}
	Brand      = Pair{Modern: BrandModern, Legacy: BrandLegacy}
)

// All 返回所有内置频道对
func All() []Pair {
	return []Pair{BungeeCord, Register, Unregister, Brand}
}
