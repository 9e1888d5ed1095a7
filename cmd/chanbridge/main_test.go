package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanbridge/go-chanbridge"
	"github.com/chanbridge/go-chanbridge/internal/protocol/bungee"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestRun_Usage(t *testing.T) {
	_, err := runCmd(t)
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "frobnicate")
	assert.ErrorIs(t, err, errUsage)

	out, err := runCmd(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "usage: chanbridge")
}

func TestRun_Version(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, chanbridge.Version)
}

func TestRun_Decode(t *testing.T) {
	data, err := bungee.Encode(bungee.Message{
		Subcommand: bungee.SubForward,
		Fields:     []bungee.Field{bungee.UTF("ALL"), bungee.Raw([]byte{0xCA, 0xFE})},
	})
	require.NoError(t, err)

	out, err := runCmd(t, "decode", "--hex", hex.EncodeToString(data))
	require.NoError(t, err)
	assert.Equal(t, "subcommand: Forward\n  [0] utf: \"ALL\"\n  [1] remaining: cafe\n", out)
}

func TestRun_DecodeReply(t *testing.T) {
	data, err := bungee.Encode(bungee.Message{
		Subcommand: bungee.SubPlayerCount,
		Fields:     []bungee.Field{bungee.UTF("lobby"), bungee.Int(3)},
	})
	require.NoError(t, err)

	out, err := runCmd(t, "decode", "--reply", "--hex", hex.EncodeToString(data))
	require.NoError(t, err)
	assert.Contains(t, out, "[1] int: 3")

	// 没有 --reply 时按请求布局解码，第二个字段被忽略
	out, err = runCmd(t, "decode", "--hex", hex.EncodeToString(data))
	require.NoError(t, err)
	assert.NotContains(t, out, "[1]")
}

func TestRun_DecodeErrors(t *testing.T) {
	_, err := runCmd(t, "decode")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "decode", "--hex", "zz")
	assert.Error(t, err)

	_, err = runCmd(t, "decode", "--hex", "0005414243")
	assert.ErrorIs(t, err, bungee.ErrMalformedPayload)

	out, err := runCmd(t, "decode", "--hex", "0003 414243")
	require.NoError(t, err)
	assert.Contains(t, out, "ABC (unknown)")
}

func TestRun_Channels(t *testing.T) {
	out, err := runCmd(t, "channels", "--remap", "WECUI=worldedit:cui", "BungeeCord", "WECUI", "FML|HS", "minecraft:brand")
	require.NoError(t, err)
	assert.Contains(t, out, "BungeeCord\tlegacy\tlegacy=BungeeCord\tmodern=bungeecord:main\n")
	assert.Contains(t, out, "WECUI\tlegacy\tlegacy=WECUI\tmodern=worldedit:cui\n")
	assert.Contains(t, out, "FML|HS\tlegacy\tlegacy=FML|HS\tmodern=legacy:fml|hs\n")
	assert.Contains(t, out, "modern view: bungeecord:main, legacy:fml|hs, minecraft:brand, worldedit:cui\n")

	_, err = runCmd(t, "channels")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "channels", "--remap", "WECUI=nope", "WECUI")
	assert.Error(t, err)
}

func TestRun_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"messaging":{"bungee_plugin_channel_enabled":false}}`), 0o600))

	out, err := runCmd(t, "config", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "bungee_plugin_channel_enabled: false")

	out, err = runCmd(t, "config", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"bungee_plugin_channel_enabled": true`)

	_, err = runCmd(t, "config", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
