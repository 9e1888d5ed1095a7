// Package chanbridge 提供多后端游戏代理的插件消息桥
//
// chanbridge 负责两件事：
//
//   - 协调旧式（1.13 之前，任意文本）与新式（namespace:path）两套频道命名，
//     按客户端协议版本给出一致的频道视图
//   - 响应后端服务器在 BungeeCord 兼容通道上发来的请求（查询玩家、
//     跨服消息、踢人、原样转发等 16 个子命令）
//
// 宿主代理持有玩家、服务器和连接对象，通过 pkg/interfaces 中的
// Directory 等接口暴露给 chanbridge。
//
// # 快速开始
//
//	bridge, err := chanbridge.New(
//	    chanbridge.WithDirectory(proxyDirectory),
//	    chanbridge.WithConfigFile("chanbridge.yaml"),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := bridge.Start(ctx); err != nil {
//	    return err
//	}
//	defer bridge.Close()
//
//	// 在代理的后端插件消息入口调用
//	if bridge.HandlePluginMessage(serverConn, msg) {
//	    return // 已被消费，不再转发给客户端
//	}
//
// # 组件
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  Bridge (chanbridge.New)                                     │
//	├──────────────────────────────────────────────────────────────┤
//	│  protocol/bungee   Responder: 兼容通道子命令                  │
//	├──────────────────────────────────────────────────────────────┤
//	│  core/channel      Registrar: 频道集合与新旧视图              │
//	│  core/metrics      流量计数与 Prometheus 指标                 │
//	│  core/eventbus     注册与子命令事件                           │
//	└──────────────────────────────────────────────────────────────┘
//
// # 文件组织
//
//   - chanbridge.go: 版本信息
//   - bridge.go: Bridge 生命周期与消息入口
//   - options.go: 用户选项
//   - fx.go: Fx 模块装配
//   - errors.go: 公共错误
package chanbridge
