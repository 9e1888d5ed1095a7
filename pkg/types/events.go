// Package types 定义 chanbridge 公共类型
//
// 本文件定义事件相关类型。
package types

import "time"

// ============================================================================
//                              Event - 事件接口
// ============================================================================

// Event 基础事件接口
type Event interface {
	// Type 返回事件类型
	Type() string

	// Timestamp 返回事件时间戳
	Timestamp() time.Time
}

// BaseEvent 基础事件实现
type BaseEvent struct {
	EventType string
	Time      time.Time
}

// Type 返回事件类型
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp 返回事件时间戳
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// NewBaseEvent 创建基础事件
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
	}
}

// 事件类型名
const (
	EventChannelsRegistered   = "channels.registered"
	EventChannelsUnregistered = "channels.unregistered"
	EventCompatCommand        = "bungee.command"
)

// ============================================================================
//                              频道事件
// ============================================================================

// EvtChannelsRegistered 频道注册事件
//
// IDs 只包含本次真正新增的频道（规范形式），重复注册不会出现在这里。
type EvtChannelsRegistered struct {
	BaseEvent
	IDs []string
}

// EvtChannelsUnregistered 频道注销事件
type EvtChannelsUnregistered struct {
	BaseEvent
	IDs []string
}

// ============================================================================
//                              兼容协议事件
// ============================================================================

// EvtCompatCommand BungeeCord 兼容子指令处理事件
type EvtCompatCommand struct {
	BaseEvent

	// Subcommand 子指令名（未知指令保留原样）
	Subcommand string

	// Server 来源后端服务器名，未知时为空
	Server string

	// Known 是否为已实现的子指令
	Known bool

	// Err 解码或执行失败的原因，成功时为 nil
	Err error
}
