// Package main 提供 chanbridge 运维命令行
//
// 子命令：
//
//	decode   --hex <payload> [--reply]    解码兼容通道负载
//	channels [--remap a=b:c] <id>...      打印频道在新旧两种视图下的名称
//	config   [--file <path>] [--json]     打印生效配置（文件 + CHANBRIDGE_* 环境变量）
//	version                               打印版本信息
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/chanbridge/go-chanbridge"
	"github.com/chanbridge/go-chanbridge/config"
	corechan "github.com/chanbridge/go-chanbridge/internal/core/channel"
	"github.com/chanbridge/go-chanbridge/internal/protocol/bungee"
	ch "github.com/chanbridge/go-chanbridge/pkg/channel"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

// errUsage 参数错误，退出码 2
var errUsage = errors.New("usage error")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage: chanbridge <command> [flags]

commands:
  decode    --hex <payload> [--reply]   decode a compatibility channel payload
  channels  [--remap legacy=ns:path] [--threshold N] <id>...
                                        show channel names in both views
  config    [--file <path>] [--json]    print the effective configuration
  version                               print version information`)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	switch args[0] {
	case "decode":
		return runDecode(args[1:], out)
	case "channels":
		return runChannels(args[1:], out)
	case "config":
		return runConfig(args[1:], out)
	case "version", "--version":
		fmt.Fprintln(out, chanbridge.VersionInfo())
		return nil
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// decode
// ═══════════════════════════════════════════════════════════════════════════

func runDecode(args []string, out io.Writer) error {
	var (
		payload string
		reply   bool
	)
	fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	fs.StringVar(&payload, "hex", "", "payload as hex (spaces allowed)")
	fs.BoolVar(&reply, "reply", false, "decode as a proxy reply instead of a backend request")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if payload == "" {
		return fmt.Errorf("%w: --hex is required", errUsage)
	}

	data, err := hex.DecodeString(strings.ReplaceAll(payload, " ", ""))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}

	layout := bungee.RequestLayout
	if reply {
		layout = bungee.ReplyLayout
	}
	m, err := bungee.Decode(data, layout)
	if errors.Is(err, bungee.ErrUnknownSubcommand) {
		fmt.Fprintf(out, "subcommand: %s (unknown)\n", m.Subcommand)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "subcommand: %s\n", m.Subcommand)
	for i, f := range m.Fields {
		if f.Kind == bungee.FieldRemaining {
			fmt.Fprintf(out, "  [%d] %s: %s\n", i, f.Kind, hex.EncodeToString(f.Raw))
			continue
		}
		fmt.Fprintf(out, "  [%d] %s: %s\n", i, f.Kind, f)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// channels
// ═══════════════════════════════════════════════════════════════════════════

func runChannels(args []string, out io.Writer) error {
	var (
		remaps    map[string]string
		threshold int
	)
	fs := pflag.NewFlagSet("channels", pflag.ContinueOnError)
	fs.StringToStringVar(&remaps, "remap", nil, "extra legacy=modern remap entries")
	fs.IntVar(&threshold, "threshold", int(types.ModernChannelThreshold), "first protocol version using modern names")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: at least one channel id is required", errUsage)
	}

	reg, err := corechan.NewRegistrar(
		corechan.WithRemaps(remaps),
		corechan.WithModernThreshold(types.ProtocolVersion(threshold)),
	)
	if err != nil {
		return err
	}

	ids := make([]ch.Identifier, 0, fs.NArg())
	for _, raw := range fs.Args() {
		id, err := ch.FromID(raw)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := reg.Register(ids...); err != nil {
		return err
	}

	modernV := types.ProtocolVersion(threshold)
	legacyV := modernV - 1
	for _, id := range reg.Identifiers() {
		fmt.Fprintf(out, "%s\t%s\tlegacy=%s\tmodern=%s\n",
			id.ID(), id.Kind(),
			reg.ChannelIDForProtocol(id, legacyV),
			reg.ChannelIDForProtocol(id, modernV))
	}
	fmt.Fprintf(out, "legacy view: %s\n", strings.Join(reg.LegacyChannelIDs(), ", "))
	fmt.Fprintf(out, "modern view: %s\n", strings.Join(reg.ModernChannelIDs(), ", "))
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// config
// ═══════════════════════════════════════════════════════════════════════════

func runConfig(args []string, out io.Writer) error {
	var (
		file   string
		asJSON bool
	)
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVar(&file, "file", "", "JSON or YAML config file")
	fs.BoolVar(&asJSON, "json", false, "print as JSON instead of YAML")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg := config.NewConfig()
	if file != "" {
		loaded, err := config.LoadFile(file)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if asJSON {
		data, err = cfg.ToJSON()
	} else {
		data, err = cfg.ToYAML()
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	if err == nil && asJSON {
		_, err = fmt.Fprintln(out)
	}
	return err
}
