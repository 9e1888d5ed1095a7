// Package interfaces 定义 chanbridge 公共接口
//
// 本文件定义频道注册表接口。
package interfaces

import (
	"github.com/chanbridge/go-chanbridge/pkg/channel"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

// ChannelRegistrar 定义频道注册表接口
//
// 注册表维护当前开放的插件消息频道集合，并按需投影出新式与旧式两种视图。
// 所有方法都是并发安全的，读操作不会阻塞写操作。
type ChannelRegistrar interface {
	// Register 注册一个或多个频道，重复注册为空操作
	Register(ids ...channel.Identifier) error

	// Unregister 注销一个或多个频道，注销不存在的频道为空操作
	Unregister(ids ...channel.Identifier) error

	// IsRegistered 检查频道是否已注册
	IsRegistered(id channel.Identifier) bool

	// ModernChannelIDs 返回 1.13+ 连接看到的频道名集合
	ModernChannelIDs() []string

	// LegacyChannelIDs 返回旧版本连接看到的频道名集合
	LegacyChannelIDs() []string

	// ChannelsForProtocol 按协议版本返回对应视图
	ChannelsForProtocol(v types.ProtocolVersion) []string

	// ChannelIDForProtocol 返回单个频道在指定协议版本下的线上名称
	ChannelIDForProtocol(id channel.Identifier, v types.ProtocolVersion) string

	// ChannelsPacket 构造指定协议版本下的 REGISTER 消息
	ChannelsPacket(v types.ProtocolVersion, ids []string) *types.PluginMessage
}
