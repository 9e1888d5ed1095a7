package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func TestChannelCounter_PerChannel(t *testing.T) {
	c := NewChannelCounter(clock.NewMock())

	c.LogRecvMessage("bungeecord:main", 100)
	c.LogRecvMessage("bungeecord:main", 20)
	c.LogSentMessage("bungeecord:main", 50)
	c.LogSentMessage("BungeeCord", 7)

	modern := c.GetBandwidthForChannel("bungeecord:main")
	assert.Equal(t, int64(120), modern.TotalIn)
	assert.Equal(t, int64(50), modern.TotalOut)
	assert.InDelta(t, 2.0, modern.RateIn, 0.001)

	legacy := c.GetBandwidthForChannel("BungeeCord")
	assert.Equal(t, int64(0), legacy.TotalIn)
	assert.Equal(t, int64(7), legacy.TotalOut)

	totals := c.GetBandwidthTotals()
	assert.Equal(t, int64(120), totals.TotalIn)
	assert.Equal(t, int64(57), totals.TotalOut)

	assert.Len(t, c.GetBandwidthByChannel(), 2)
	assert.Equal(t, Stats{}, c.GetBandwidthForChannel("unknown"))
}

// TestChannelCounter_RateDecays 速率随时间衰减，累计值不变
func TestChannelCounter_RateDecays(t *testing.T) {
	clk := clock.NewMock()
	c := NewChannelCounter(clk)

	c.LogSentMessage("minecraft:register", 600)
	clk.Add(61 * time.Second)

	stats := c.GetBandwidthForChannel("minecraft:register")
	assert.Equal(t, int64(600), stats.TotalOut)
	assert.Zero(t, stats.RateOut)
}

func TestChannelCounter_Reset(t *testing.T) {
	c := NewChannelCounter(nil)
	c.LogRecvMessage("a:b", 1)
	c.Reset()

	assert.Empty(t, c.GetBandwidthByChannel())
	assert.Equal(t, int64(0), c.GetBandwidthTotals().TotalIn)
}

func TestChannelCounter_Concurrent(t *testing.T) {
	c := NewChannelCounter(clock.NewMock())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.LogRecvMessage("bungeecord:main", 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), c.GetBandwidthForChannel("bungeecord:main").TotalIn)
}
