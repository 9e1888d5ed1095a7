// Package channel 实现插件消息频道注册表
//
// Registrar 维护当前开放的频道集合（新式 namespace:path 与旧式裸名称混存），
// 按需投影出两种视图：
//
//   - 新式视图：新式频道取自身规范形式；旧式频道先查重映射表
//     （如 bungeecord → bungeecord:main），查不到则合成 "legacy:" + 小写名称
//   - 旧式视图：旧式频道取原名，新式频道取规范形式
//
// 重映射表只影响旧式频道在新式视图中的投影。
//
// # 并发模型
//
// 注册集合以不可变快照发布（copy-on-write）。写操作在互斥锁下复制并替换快照，
// 读操作只做一次原子加载，不持锁。视图每次调用时重新计算，不缓存。
//
// # 使用示例
//
//	reg, _ := channel.NewRegistrar(channel.WithEventBus(bus))
//	_ = reg.Register(channelids.BungeeCordLegacy, channelids.BrandModern)
//
//	reg.ModernChannelIDs() // [bungeecord:main minecraft:brand]
//	reg.LegacyChannelIDs() // [BungeeCord minecraft:brand]
//
// 后端发来的 REGISTER/UNREGISTER 插件消息由 HandleChannelMessage 处理。
package channel
