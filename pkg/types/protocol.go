// Package types 定义 chanbridge 公共类型
//
// 本文件定义协议版本相关类型。
package types

import "strconv"

// ProtocolVersion 游戏协议版本号
//
// 与握手包中协商的协议号一一对应，只比较大小，不解析发布名称。
type ProtocolVersion int

// 已知协议版本
const (
	// ProtocolUnknown 未知版本
	ProtocolUnknown ProtocolVersion = -1

	// Minecraft_1_7_2 最早支持的版本
	Minecraft_1_7_2 ProtocolVersion = 4

	// Minecraft_1_8 1.8
	Minecraft_1_8 ProtocolVersion = 47

	// Minecraft_1_12_2 最后一个使用旧式频道名的版本
	Minecraft_1_12_2 ProtocolVersion = 340

	// Minecraft_1_13 引入命名空间频道（namespace:path）的版本
	Minecraft_1_13 ProtocolVersion = 393

	// Minecraft_1_20_2 引入配置阶段的版本
	Minecraft_1_20_2 ProtocolVersion = 764
)

// ModernChannelThreshold 使用新式频道名的最低协议版本
const ModernChannelThreshold = Minecraft_1_13

// Int 返回协议号
func (v ProtocolVersion) Int() int {
	return int(v)
}

// AtLeast 检查是否不低于指定版本
func (v ProtocolVersion) AtLeast(other ProtocolVersion) bool {
	return v >= other
}

// Less 检查是否低于指定版本
func (v ProtocolVersion) Less(other ProtocolVersion) bool {
	return v < other
}

// IsUnknown 检查是否为未知版本
func (v ProtocolVersion) IsUnknown() bool {
	return v < 0
}

// UsesModernChannels 检查该版本是否使用 namespace:path 频道名
func (v ProtocolVersion) UsesModernChannels() bool {
	return v.AtLeast(ModernChannelThreshold)
}

// String 返回协议版本的字符串表示
func (v ProtocolVersion) String() string {
	if v.IsUnknown() {
		return "unknown"
	}
	return "protocol-" + strconv.Itoa(int(v))
}
