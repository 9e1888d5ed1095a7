package channelids

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanbridge/go-chanbridge/pkg/types"
)

func TestBungeeCordIDs(t *testing.T) {
	assert.Equal(t, "bungeecord:main", BungeeCordModern.ID())
	assert.Equal(t, "BungeeCord", BungeeCordLegacy.ID())
}

func TestPair_ForProtocol(t *testing.T) {
	assert.Equal(t, "bungeecord:main", BungeeCord.ForProtocol(types.Minecraft_1_13))
	assert.Equal(t, "BungeeCord", BungeeCord.ForProtocol(types.Minecraft_1_12_2))
	assert.Equal(t, "minecraft:register", Register.ForProtocol(types.Minecraft_1_20_2))
	assert.Equal(t, "REGISTER", Register.ForProtocol(types.Minecraft_1_8))
}

func TestPair_Matches(t *testing.T) {
	assert.True(t, BungeeCord.Matches("bungeecord:main"))
	assert.True(t, BungeeCord.Matches("BungeeCord"))
	assert.False(t, BungeeCord.Matches("bungeecord"))
	assert.False(t, BungeeCord.Matches("legacy:bungeecord"))
}

func TestAll(t *testing.T) {
	for _, p := range All() {
		assert.True(t, p.Modern.IsModern(), p.Modern.String())
		assert.True(t, p.Legacy.IsLegacy(), p.Legacy.String())
	}
}
