package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
)

// channelStats 单个通道的计数器
type channelStats struct {
	in      atomic.Int64
	out     atomic.Int64
	inRate  *RateMeter
	outRate *RateMeter
}

func (s *channelStats) snapshot() Stats {
	return Stats{
		TotalIn:  s.in.Load(),
		TotalOut: s.out.Load(),
		RateIn:   s.inRate.Rate(),
		RateOut:  s.outRate.Rate(),
	}
}

// ChannelCounter 按插件通道统计流量
//
// 通道计数器在首次记录时创建，之后只做原子累加。
type ChannelCounter struct {
	clock clock.Clock
	total *channelStats

	mu       sync.RWMutex
	channels map[string]*channelStats
}

// NewChannelCounter 创建 ChannelCounter，clk 为 nil 时使用系统时钟
func NewChannelCounter(clk clock.Clock) *ChannelCounter {
	if clk == nil {
		clk = clock.New()
	}
	c := &ChannelCounter{
		clock:    clk,
		channels: make(map[string]*channelStats),
	}
	c.total = c.newStats()
	return c
}

func (c *ChannelCounter) newStats() *channelStats {
	return &channelStats{
		inRate:  NewRateMeter(c.clock),
		outRate: NewRateMeter(c.clock),
	}
}

func (c *ChannelCounter) forChannel(channel string) *channelStats {
	c.mu.RLock()
	s := c.channels[channel]
	c.mu.RUnlock()
	if s != nil {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s = c.channels[channel]; s == nil {
		s = c.newStats()
		c.channels[channel] = s
	}
	return s
}

// LogRecvMessage 记录从后端收到的插件消息
func (c *ChannelCounter) LogRecvMessage(channel string, size int) {
	n := int64(size)
	s := c.forChannel(channel)
	s.in.Add(n)
	s.inRate.Add(n)
	c.total.in.Add(n)
	c.total.inRate.Add(n)
}

// LogSentMessage 记录写往后端的插件消息
func (c *ChannelCounter) LogSentMessage(channel string, size int) {
	n := int64(size)
	s := c.forChannel(channel)
	s.out.Add(n)
	s.outRate.Add(n)
	c.total.out.Add(n)
	c.total.outRate.Add(n)
}

// GetBandwidthForChannel 返回单个通道的统计
func (c *ChannelCounter) GetBandwidthForChannel(channel string) Stats {
	c.mu.RLock()
	s := c.channels[channel]
	c.mu.RUnlock()
	if s == nil {
		return Stats{}
	}
	return s.snapshot()
}

// GetBandwidthTotals 返回所有通道的合计
func (c *ChannelCounter) GetBandwidthTotals() Stats {
	return c.total.snapshot()
}

// GetBandwidthByChannel 返回所有通道的统计
func (c *ChannelCounter) GetBandwidthByChannel() map[string]Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Stats, len(c.channels))
	for ch, s := range c.channels {
		out[ch] = s.snapshot()
	}
	return out
}

// Reset 重置所有统计
func (c *ChannelCounter) Reset() {
	c.mu.Lock()
	c.channels = make(map[string]*channelStats)
	c.mu.Unlock()
	c.total = c.newStats()
}
