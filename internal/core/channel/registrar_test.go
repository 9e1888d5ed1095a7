package channel

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanbridge/go-chanbridge/internal/core/eventbus"
	ch "github.com/chanbridge/go-chanbridge/pkg/channel"
	"github.com/chanbridge/go-chanbridge/pkg/channelids"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

var (
	modernTest    = ch.MustFromKey("velocity", "test")
	simpleLegacy  = ch.MustLegacy("VelocityTest")
	modernRemap   = ch.MustFromKey("bungeecord", "main")
	legacyRemap   = ch.MustLegacy("BungeeCord")
	legacyTestMod = "legacy:velocitytest"
)

func newRegistrar(t *testing.T, opts ...Option) *Registrar {
	t.Helper()
	r, err := NewRegistrar(opts...)
	require.NoError(t, err)
	return r
}

// TestRegistrar_Register 新式与旧式频道混合注册后的两种视图
func TestRegistrar_Register(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(modernTest, simpleLegacy))

	assert.ElementsMatch(t, []string{"velocity:test", legacyTestMod}, r.ModernChannelIDs())
	assert.ElementsMatch(t, []string{"VelocityTest", "velocity:test"}, r.LegacyChannelIDs())
}

// TestRegistrar_RegisterSpecialRewrite 重映射后两者在新式视图中重合
func TestRegistrar_RegisterSpecialRewrite(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(legacyRemap, modernRemap))

	assert.Equal(t, []string{"bungeecord:main"}, r.ModernChannelIDs())
	assert.ElementsMatch(t, []string{"bungeecord:main", "BungeeCord"}, r.LegacyChannelIDs())
	assert.Equal(t, 2, r.Len())
}

// TestRegistrar_Unregister 注销只移除自身的投影
func TestRegistrar_Unregister(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(modernTest, simpleLegacy))
	require.NoError(t, r.Unregister(simpleLegacy))

	assert.Equal(t, []string{"velocity:test"}, r.ModernChannelIDs())
	assert.Equal(t, []string{"velocity:test"}, r.LegacyChannelIDs())
}

// TestRegistrar_UnregisterKeepsSharedProjection 共享投影在另一方仍注册时保留
func TestRegistrar_UnregisterKeepsSharedProjection(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(legacyRemap, modernRemap))
	require.NoError(t, r.Unregister(legacyRemap))

	assert.Equal(t, []string{"bungeecord:main"}, r.ModernChannelIDs())
	assert.Equal(t, []string{"bungeecord:main"}, r.LegacyChannelIDs())
}

func TestRegistrar_IsRegisteredLifecycle(t *testing.T) {
	r := newRegistrar(t)
	for _, id := range []ch.Identifier{modernTest, simpleLegacy, legacyRemap} {
		assert.False(t, r.IsRegistered(id))
		require.NoError(t, r.Register(id))
		assert.True(t, r.IsRegistered(id))
		require.NoError(t, r.Unregister(id))
		assert.False(t, r.IsRegistered(id))
	}
}

// TestRegistrar_LegacyAndModernSameText 同文本的旧式与新式频道是不同条目
func TestRegistrar_LegacyAndModernSameText(t *testing.T) {
	r := newRegistrar(t)
	legacyColon := ch.MustLegacy("velocity:test")
	require.NoError(t, r.Register(modernTest))

	assert.True(t, r.IsRegistered(modernTest))
	assert.False(t, r.IsRegistered(legacyColon))
}

func TestRegistrar_Idempotent(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(modernTest))
	require.NoError(t, r.Register(modernTest, modernTest))
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Unregister(simpleLegacy))
	assert.Equal(t, 1, r.Len())
}

func TestRegistrar_InvalidInput(t *testing.T) {
	r := newRegistrar(t)

	assert.ErrorIs(t, r.Register(), ErrEmptyIdentifiers)
	assert.ErrorIs(t, r.Unregister(), ErrEmptyIdentifiers)

	// 整批拒绝
	err := r.Register(modernTest, ch.Identifier{})
	assert.ErrorIs(t, err, ch.ErrInvalidIdentifier)
	assert.Equal(t, 0, r.Len())
}

func TestRegistrar_LegacyProjectionLowercases(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(ch.MustLegacy("MC|Brand"), ch.MustLegacy("WECUI")))

	assert.ElementsMatch(t, []string{"minecraft:brand", "legacy:wecui"}, r.ModernChannelIDs())
	assert.ElementsMatch(t, []string{"MC|Brand", "WECUI"}, r.LegacyChannelIDs())
}

func TestRegistrar_WithRemap(t *testing.T) {
	r := newRegistrar(t, WithRemap("WECUI", "worldedit:cui"))
	require.NoError(t, r.Register(ch.MustLegacy("WECUI")))
	assert.Equal(t, []string{"worldedit:cui"}, r.ModernChannelIDs())

	// 重映射不影响新式标识符
	require.NoError(t, r.Register(ch.MustFromKey("legacy", "wecui")))
	assert.ElementsMatch(t, []string{"worldedit:cui", "legacy:wecui"}, r.ModernChannelIDs())

	_, err := NewRegistrar(WithRemap("x", "NotModern"))
	assert.ErrorIs(t, err, ErrInvalidRemap)
	_, err = NewRegistrar(WithRemaps(map[string]string{"": "a:b"}))
	assert.ErrorIs(t, err, ErrInvalidRemap)
}

func TestDefaultRemaps_IsCopy(t *testing.T) {
	m := DefaultRemaps()
	m["bungeecord"] = "changed:value"
	assert.Equal(t, "bungeecord:main", DefaultRemaps()["bungeecord"])
}

func TestRegistrar_ChannelsForProtocol(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(legacyRemap, simpleLegacy))

	assert.ElementsMatch(t, []string{"bungeecord:main", legacyTestMod}, r.ChannelsForProtocol(types.Minecraft_1_13))
	assert.ElementsMatch(t, []string{"BungeeCord", "VelocityTest"}, r.ChannelsForProtocol(types.Minecraft_1_12_2))
}

func TestRegistrar_ChannelIDForProtocol(t *testing.T) {
	r := newRegistrar(t)

	assert.Equal(t, "bungeecord:main", r.ChannelIDForProtocol(channelids.BungeeCordLegacy, types.Minecraft_1_20_2))
	assert.Equal(t, "BungeeCord", r.ChannelIDForProtocol(channelids.BungeeCordLegacy, types.Minecraft_1_8))
	assert.Equal(t, "velocity:test", r.ChannelIDForProtocol(modernTest, types.Minecraft_1_8))
	assert.Equal(t, legacyTestMod, r.ChannelIDForProtocol(simpleLegacy, types.Minecraft_1_13))
}

func TestRegistrar_ModernThreshold(t *testing.T) {
	r := newRegistrar(t, WithModernThreshold(types.Minecraft_1_20_2))
	assert.False(t, r.UsesModernChannels(types.Minecraft_1_13))
	assert.True(t, r.UsesModernChannels(types.Minecraft_1_20_2))
	assert.Equal(t, "BungeeCord", r.ChannelIDForProtocol(channelids.BungeeCordLegacy, types.Minecraft_1_13))
}

func TestRegistrar_FromID(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(legacyRemap, modernTest))

	id, ok := r.FromID("bungeecord:main")
	require.True(t, ok)
	assert.Equal(t, legacyRemap, id)

	id, ok = r.FromID("BungeeCord")
	require.True(t, ok)
	assert.Equal(t, legacyRemap, id)

	_, ok = r.FromID("unknown:channel")
	assert.False(t, ok)
}

func TestRegistrar_Identifiers(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(modernTest, legacyRemap))
	assert.Equal(t, []ch.Identifier{legacyRemap, modernTest}, r.Identifiers())
}

// TestRegistrar_Events 事件只包含真正变化的频道
func TestRegistrar_Events(t *testing.T) {
	bus := eventbus.NewBus()
	defer bus.Close()

	regSub, err := bus.Subscribe(new(types.EvtChannelsRegistered))
	require.NoError(t, err)
	unregSub, err := bus.Subscribe(new(types.EvtChannelsUnregistered))
	require.NoError(t, err)

	r := newRegistrar(t, WithEventBus(bus))
	require.NoError(t, r.Register(modernTest))
	require.NoError(t, r.Register(modernTest, simpleLegacy))
	require.NoError(t, r.Unregister(simpleLegacy, legacyRemap))

	first := (<-regSub.Out()).(types.EvtChannelsRegistered)
	assert.Equal(t, []string{"velocity:test"}, first.IDs)
	assert.Equal(t, types.EventChannelsRegistered, first.Type())

	second := (<-regSub.Out()).(types.EvtChannelsRegistered)
	assert.Equal(t, []string{"VelocityTest"}, second.IDs)

	removed := (<-unregSub.Out()).(types.EvtChannelsUnregistered)
	assert.Equal(t, []string{"VelocityTest"}, removed.IDs)

	// 无变化不发事件
	require.NoError(t, r.Register(modernTest))
	select {
	case evt := <-regSub.Out():
		t.Fatalf("unexpected event %v", evt)
	case <-time.After(20 * time.Millisecond):
	}
}

// TestRegistrar_ConcurrentMutation 并发注册/注销与读取
func TestRegistrar_ConcurrentMutation(t *testing.T) {
	r := newRegistrar(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		id := ch.MustFromKey("plugin", fmt.Sprintf("chan%d", i))
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = r.Register(id)
				_ = r.Unregister(id)
			}
			_ = r.Register(id)
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				modern := r.ModernChannelIDs()
				legacy := r.LegacyChannelIDs()
				// 全部是新式频道，两种视图长度可能因读取时刻不同而不同，但各自不重复
				assert.LessOrEqual(t, len(modern), 16)
				assert.LessOrEqual(t, len(legacy), 16)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, r.Len())
	assert.Len(t, r.ModernChannelIDs(), 16)
}

// TestRegistrar_SnapshotIsolation 读取返回的集合不受后续写入影响
func TestRegistrar_SnapshotIsolation(t *testing.T) {
	r := newRegistrar(t)
	require.NoError(t, r.Register(modernTest))

	set := r.ModernChannelSet()
	require.NoError(t, r.Register(simpleLegacy))

	assert.Len(t, set, 1)
	assert.Len(t, r.ModernChannelSet(), 2)
}
