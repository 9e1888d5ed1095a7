package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromKey(t *testing.T) {
	id, err := FromKey("bungeecord", "main")
	require.NoError(t, err)

	assert.Equal(t, KindModern, id.Kind())
	assert.Equal(t, "bungeecord:main", id.ID())
	assert.Equal(t, "bungeecord:main", id.CanonicalForm())
	assert.Equal(t, "bungeecord", id.Namespace())
	assert.Equal(t, "main", id.Path())
	assert.True(t, id.IsModern())
	assert.True(t, id.IsValid())
}

func TestFromKey_Invalid(t *testing.T) {
	cases := []struct {
		name      string
		namespace string
		path      string
	}{
		{"empty namespace", "", "main"},
		{"empty path", "bungeecord", ""},
		{"uppercase", "BungeeCord", "main"},
		{"space", "velocity", "my channel"},
		{"slash in path", "minecraft", "a/b"},
		{"colon in path", "a", "b:c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromKey(tc.namespace, tc.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidIdentifier)
		})
	}
}

func TestLegacy(t *testing.T) {
	id, err := Legacy("BungeeCord")
	require.NoError(t, err)

	assert.Equal(t, KindLegacy, id.Kind())
	assert.Equal(t, "BungeeCord", id.ID())
	assert.Equal(t, "BungeeCord", id.Name())
	assert.Empty(t, id.Namespace())
	assert.Nil(t, id.Key())

	_, err = Legacy("")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestIdentifier_Equal(t *testing.T) {
	modern := MustFromKey("velocity", "test")
	assert.True(t, modern.Equal(MustFromKey("velocity", "test")))
	assert.False(t, modern.Equal(MustLegacy("VelocityTest")))

	// 种类不同即不相等，即使规范形式相同
	assert.False(t, modern.Equal(MustLegacy("velocity:test")))
	assert.True(t, MustLegacy("velocity:test").Equal(MustLegacy("velocity:test")))
}

func TestIdentifier_Comparable(t *testing.T) {
	set := map[Identifier]struct{}{}
	set[MustFromKey("velocity", "test")] = struct{}{}
	set[MustFromKey("velocity", "test")] = struct{}{}
	set[MustLegacy("VelocityTest")] = struct{}{}

	assert.Len(t, set, 2)
}

func TestIdentifier_Key(t *testing.T) {
	k := MustFromKey("minecraft", "brand").Key()
	require.NotNil(t, k)
	assert.Equal(t, "minecraft", k.Namespace())
	assert.Equal(t, "brand", k.Value())

	back, err := FromMinecraftKey(k)
	require.NoError(t, err)
	assert.Equal(t, "minecraft:brand", back.ID())
}

func TestFromID(t *testing.T) {
	modern, err := FromID("minecraft:register")
	require.NoError(t, err)
	assert.True(t, modern.IsModern())

	// 不满足新式字符集时退化为旧式
	legacy, err := FromID("MC|Brand")
	require.NoError(t, err)
	assert.True(t, legacy.IsLegacy())

	mixed, err := FromID("Forge:Handshake")
	require.NoError(t, err)
	assert.True(t, mixed.IsLegacy())
	assert.Equal(t, "Forge:Handshake", mixed.ID())

	_, err = FromID("")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestIdentifier_ZeroValue(t *testing.T) {
	var id Identifier
	assert.False(t, id.IsValid())
	assert.Equal(t, "", id.ID())
	assert.Equal(t, "invalid", id.String())
}
