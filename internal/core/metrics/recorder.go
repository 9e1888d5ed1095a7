package metrics

import (
	"errors"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder 同时维护 ChannelCounter 和 Prometheus 计数器
type Recorder struct {
	counter  *ChannelCounter
	commands *prometheus.CounterVec
	bytes    *prometheus.CounterVec
}

// NewRecorder 创建 Recorder 并注册到 reg
//
// reg 为 nil 时不注册，计数器仍然可用。
// reg 上已存在同名计数器时复用已注册的实例。
func NewRecorder(reg prometheus.Registerer, clk clock.Clock) (*Recorder, error) {
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chanbridge",
		Subsystem: "bungee",
		Name:      "commands_total",
		Help:      "BungeeCord compatibility sub-commands processed, by outcome.",
	}, []string{"subcommand", "outcome"})

	bytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chanbridge",
		Name:      "plugin_message_bytes_total",
		Help:      "Plugin message payload bytes, by channel and direction.",
	}, []string{"channel", "direction"})

	if reg != nil {
		var err error
		if commands, err = register(reg, commands); err != nil {
			return nil, err
		}
		if bytes, err = register(reg, bytes); err != nil {
			return nil, err
		}
	}

	return &Recorder{
		counter:  NewChannelCounter(clk),
		commands: commands,
		bytes:    bytes,
	}, nil
}

func register(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return vec, nil
}

// Counter 返回按通道统计的计数器
func (r *Recorder) Counter() *ChannelCounter {
	return r.counter
}

// LogRecvMessage 记录入站插件消息大小
func (r *Recorder) LogRecvMessage(channel string, size int) {
	r.counter.LogRecvMessage(channel, size)
	r.bytes.WithLabelValues(channel, DirectionIn).Add(float64(size))
}

// LogSentMessage 记录出站插件消息大小
func (r *Recorder) LogSentMessage(channel string, size int) {
	r.counter.LogSentMessage(channel, size)
	r.bytes.WithLabelValues(channel, DirectionOut).Add(float64(size))
}

// LogCommand 记录一次兼容协议子命令处理结果
func (r *Recorder) LogCommand(subcommand, outcome string) {
	r.commands.WithLabelValues(subcommand, outcome).Inc()
}
