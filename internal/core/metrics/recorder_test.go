package metrics

import (
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/chanbridge/go-chanbridge/config"
)

func TestRecorder_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg, clock.NewMock())
	require.NoError(t, err)

	rec.LogCommand("PlayerCount", OutcomeHandled)
	rec.LogCommand("PlayerCount", OutcomeHandled)
	rec.LogCommand("Bogus", OutcomeUnknown)
	rec.LogRecvMessage("bungeecord:main", 12)
	rec.LogSentMessage("bungeecord:main", 30)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.commands.WithLabelValues("PlayerCount", OutcomeHandled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.commands.WithLabelValues("Bogus", OutcomeUnknown)))
	assert.Equal(t, 12.0, testutil.ToFloat64(rec.bytes.WithLabelValues("bungeecord:main", DirectionIn)))
	assert.Equal(t, 30.0, testutil.ToFloat64(rec.bytes.WithLabelValues("bungeecord:main", DirectionOut)))

	assert.Equal(t, int64(12), rec.Counter().GetBandwidthForChannel("bungeecord:main").TotalIn)

	n, err := testutil.GatherAndCount(reg, "chanbridge_bungee_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// TestRecorder_ReusesRegistered 同一 Registerer 上重复创建复用已注册的计数器
func TestRecorder_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewRecorder(reg, nil)
	require.NoError(t, err)
	second, err := NewRecorder(reg, nil)
	require.NoError(t, err)

	first.LogCommand("IP", OutcomeHandled)
	second.LogCommand("IP", OutcomeHandled)
	assert.Equal(t, 2.0, testutil.ToFloat64(second.commands.WithLabelValues("IP", OutcomeHandled)))
}

func TestRecorder_NilRegisterer(t *testing.T) {
	rec, err := NewRecorder(nil, nil)
	require.NoError(t, err)
	rec.LogCommand("IP", OutcomeHandled)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.commands.WithLabelValues("IP", OutcomeHandled)))
}

func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	var (
		rec      *Recorder
		reporter Reporter
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module,
		fx.Populate(&rec, &reporter),
	)
	app.RequireStart().RequireStop()

	assert.Nil(t, rec)
	assert.IsType(t, NopReporter{}, reporter)
}

func TestModule_Enabled(t *testing.T) {
	reg := prometheus.NewRegistry()

	var reporter Reporter
	app := fxtest.New(t,
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module,
		fx.Populate(&reporter),
	)
	app.RequireStart().RequireStop()

	rec, ok := reporter.(*Recorder)
	require.True(t, ok)
	rec.LogCommand("Forward", OutcomeHandled)

	n, err := testutil.GatherAndCount(reg, "chanbridge_bungee_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
