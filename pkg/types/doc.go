// Package types 定义 chanbridge 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 chanbridge 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - protocol.go       - ProtocolVersion 协议版本号及比较
//   - plugin_message.go - PluginMessage 插件消息包
//   - events.go         - 事件类型（频道注册/注销、兼容指令执行）
//
// # 事件类型 (EvtXXX)
//
//   - EvtChannelsRegistered   - 频道注册事件
//   - EvtChannelsUnregistered - 频道注销事件
//   - EvtCompatCommand        - BungeeCord 兼容指令处理事件
package types
