package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/chanbridge/go-chanbridge/config"
	"github.com/chanbridge/go-chanbridge/internal/core/eventbus"
	ch "github.com/chanbridge/go-chanbridge/pkg/channel"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

// TestModule_InitialChannels 启动时注册配置中的频道并应用重映射
func TestModule_InitialChannels(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Channels.Initial = []string{"BungeeCord", "WECUI"}
	cfg.Channels.Remaps = map[string]string{"wecui": "worldedit:cui"}

	var reg pkgif.ChannelRegistrar
	app := fxtest.New(t,
		fx.Supply(cfg),
		eventbus.Module(),
		Module(),
		fx.Populate(&reg),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.True(t, reg.IsRegistered(ch.MustLegacy("BungeeCord")))
	assert.Equal(t, []string{"bungeecord:main", "worldedit:cui"}, reg.ModernChannelIDs())
}

func TestModule_ThresholdFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Messaging.ModernChannelProtocol = int(types.Minecraft_1_20_2)

	var reg *Registrar
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&reg),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.False(t, reg.UsesModernChannels(types.Minecraft_1_13))
}

func TestModule_Defaults(t *testing.T) {
	var reg *Registrar
	app := fxtest.New(t, Module(), fx.Populate(&reg))
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, 0, reg.Len())
	assert.True(t, reg.UsesModernChannels(types.Minecraft_1_13))
}
