// Package eventbus 实现进程内事件总线
//
// 按事件的 Go 类型分发，支持：
//   - 多订阅者
//   - 缓冲区配置
//   - 有状态模式（Stateful）
//
// 通道注册器在注册集合变化后发射 types.EvtChannelsRegistered /
// types.EvtChannelsUnregistered，兼容协议应答器每处理一条子命令
// 发射一次 types.EvtCompatCommand。
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	sub, _ := bus.Subscribe(new(types.EvtChannelsRegistered))
//	defer sub.Close()
//
//	go func() {
//	    for evt := range sub.Out() {
//	        e := evt.(types.EvtChannelsRegistered)
//	        // 处理事件
//	    }
//	}()
//
// 发射永不阻塞：订阅者缓冲区满时事件被丢弃并计数。
package eventbus
