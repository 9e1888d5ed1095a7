package metrics

// 子命令处理结果标签
const (
	OutcomeHandled   = "handled"
	OutcomeUnknown   = "unknown"
	OutcomeMalformed = "malformed"
	OutcomeFailed    = "failed"
)

// 流量方向标签
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Reporter 提供记录插件消息指标的方法
type Reporter interface {
	// LogRecvMessage 记录入站插件消息大小
	LogRecvMessage(channel string, size int)

	// LogSentMessage 记录出站插件消息大小
	LogSentMessage(channel string, size int)

	// LogCommand 记录一次兼容协议子命令处理结果
	LogCommand(subcommand, outcome string)
}

// NopReporter 丢弃所有指标
type NopReporter struct{}

func (NopReporter) LogRecvMessage(string, int) {}
func (NopReporter) LogSentMessage(string, int) {}
func (NopReporter) LogCommand(string, string)  {}

var (
	_ Reporter = (*Recorder)(nil)
	_ Reporter = NopReporter{}
)
