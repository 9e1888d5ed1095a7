package metrics

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

// TestRateMeter_Window 窗口内累计，超过 60 秒后归零
func TestRateMeter_Window(t *testing.T) {
	clk := clock.NewMock()
	r := NewRateMeter(clk)

	r.Add(600)
	clk.Add(10 * time.Second)
	r.Add(600)

	assert.Equal(t, int64(1200), r.Window())
	assert.InDelta(t, 20.0, r.Rate(), 0.001)

	// 第一次写入滑出窗口
	clk.Add(55 * time.Second)
	assert.Equal(t, int64(600), r.Window())

	clk.Add(2 * time.Minute)
	assert.Equal(t, int64(0), r.Window())
}

func TestRateMeter_Reset(t *testing.T) {
	clk := clock.NewMock()
	r := NewRateMeter(clk)
	r.Add(100)
	r.Reset()
	assert.Equal(t, int64(0), r.Window())
}

func TestRateMeter_NilClock(t *testing.T) {
	r := NewRateMeter(nil)
	r.Add(60)
	assert.Equal(t, int64(60), r.Window())
}
