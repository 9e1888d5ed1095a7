package bungee

import (
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/chanbridge/go-chanbridge/config"
	corechan "github.com/chanbridge/go-chanbridge/internal/core/channel"
	"github.com/chanbridge/go-chanbridge/internal/core/eventbus"
	"github.com/chanbridge/go-chanbridge/internal/core/metrics"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
	"github.com/chanbridge/go-chanbridge/pkg/types"
	"github.com/chanbridge/go-chanbridge/tests/mocks"
)

func TestModule_Wiring(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Messaging.ConnectTimeout = config.Duration(5 * time.Second)

	dir := mocks.NewMockDirectory()
	lobby := dir.AddServer("lobby", &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 25565})
	alice := dir.AddPlayer("alice")
	origin := dir.Join(alice, lobby, types.Minecraft_1_13)

	reg := prometheus.NewRegistry()
	var (
		responder *Responder
		recorder  *metrics.Recorder
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() pkgif.Directory { return dir }),
		fx.Provide(func() prometheus.Registerer { return reg }),
		eventbus.Module(),
		corechan.Module(),
		metrics.Module,
		Module(),
		fx.Populate(&responder, &recorder),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.True(t, responder.Enabled())
	assert.Equal(t, 5*time.Second, responder.cfg.ConnectTimeout)

	require.True(t, responder.Process(origin, request(t, SubGetServer)))
	assert.Len(t, origin.ConnValue.Messages(), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(
		recorder.commands.WithLabelValues(SubGetServer, metrics.OutcomeHandled)))
}

func TestModule_DisabledFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Messaging.BungeePluginChannelEnabled = false
	cfg.Metrics.Enabled = false

	dir := mocks.NewMockDirectory()
	var responder *Responder
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() pkgif.Directory { return dir }),
		corechan.Module(),
		metrics.Module,
		Module(),
		fx.Populate(&responder),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.False(t, responder.Enabled())
	assert.False(t, responder.Process(nil, request(t, SubGetServer)))
}
