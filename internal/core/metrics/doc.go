// Package metrics 提供插件消息流量与兼容协议子命令指标
//
// 两层统计：
//   - ChannelCounter：按通道累计入站/出站字节数，并用 60 秒滑动窗口计算速率
//   - Recorder：把同样的数据导出为 Prometheus 计数器
//
// # 快速开始
//
//	rec := metrics.NewRecorder(prometheus.NewRegistry(), clock.New())
//
//	rec.LogRecvMessage("bungeecord:main", len(msg.Data))
//	rec.LogCommand("PlayerCount", metrics.OutcomeHandled)
//
//	stats := rec.Counter().GetBandwidthForChannel("bungeecord:main")
//	fmt.Printf("In: %d, RateIn: %.2f B/s\n", stats.TotalIn, stats.RateIn)
//
// 导出的指标：
//
//	chanbridge_bungee_commands_total{subcommand, outcome}
//	chanbridge_plugin_message_bytes_total{channel, direction}
package metrics
