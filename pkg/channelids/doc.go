// Package channelids 定义 chanbridge 内置频道标识符的唯一来源
//
// 所有模块、测试、命令行工具在需要内置频道时，必须引用本包中的变量，
// 不要在其他位置重复写频道名字面量。
//
// # 内置频道
//
//   - BungeeCord 兼容频道: bungeecord:main / BungeeCord
//   - 频道注册:            minecraft:register / REGISTER
//   - 频道注销:            minecraft:unregister / UNREGISTER
//   - 客户端品牌:          minecraft:brand / MC|Brand
package channelids
