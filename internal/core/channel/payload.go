package channel

import (
	"bytes"
	"strings"

	ch "github.com/chanbridge/go-chanbridge/pkg/channel"
	"github.com/chanbridge/go-chanbridge/pkg/channelids"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

// ParseChannels 解析 REGISTER/UNREGISTER 负载，频道名以 NUL 分隔，空项忽略
func ParseChannels(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte{0})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) > 0 {
			out = append(out, string(p))
		}
	}
	return out
}

// ConstructChannelsPacket 构造 REGISTER 插件消息，频道名按固定的 1.13 阈值选择
//
// 注册表配置了其他阈值时应使用 Registrar.ChannelsPacket。
func ConstructChannelsPacket(v types.ProtocolVersion, ids []string) *types.PluginMessage {
	return types.NewPluginMessage(
		channelids.Register.ForProtocol(v),
		[]byte(strings.Join(ids, "\x00")),
	)
}

// IsRegisterMessage 是否为频道注册消息（任一形式）
func IsRegisterMessage(msg *types.PluginMessage) bool {
	return msg != nil && channelids.Register.Matches(msg.Channel)
}

// IsUnregisterMessage 是否为频道注销消息（任一形式）
func IsUnregisterMessage(msg *types.PluginMessage) bool {
	return msg != nil && channelids.Unregister.Matches(msg.Channel)
}

// ChannelsPacket 构造 REGISTER 插件消息，频道名与视图使用同一阈值
func (r *Registrar) ChannelsPacket(v types.ProtocolVersion, ids []string) *types.PluginMessage {
	channel := channelids.RegisterLegacy.ID()
	if r.UsesModernChannels(v) {
		channel = channelids.RegisterModern.ID()
	}
	return types.NewPluginMessage(channel, []byte(strings.Join(ids, "\x00")))
}

// RegisterPacket 构造当前注册集合在指定协议版本下的 REGISTER 消息
//
// 集合为空时返回 nil。
func (r *Registrar) RegisterPacket(v types.ProtocolVersion) *types.PluginMessage {
	ids := r.ChannelsForProtocol(v)
	if len(ids) == 0 {
		return nil
	}
	return r.ChannelsPacket(v, ids)
}

// HandleChannelMessage 应用后端发来的 REGISTER/UNREGISTER 消息
//
// 其他频道的消息返回 false。无法解析的频道名被跳过并记录日志。
func (r *Registrar) HandleChannelMessage(msg *types.PluginMessage) (bool, error) {
	register := IsRegisterMessage(msg)
	if !register && !IsUnregisterMessage(msg) {
		return false, nil
	}

	raw := ParseChannels(msg.Data)
	ids := make([]ch.Identifier, 0, len(raw))
	for _, s := range raw {
		id, err := ch.FromID(s)
		if err != nil {
			logger.Debug("跳过无效频道名", "channel", s, "err", err)
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return true, nil
	}

	if register {
		return true, r.Register(ids...)
	}
	return true, r.Unregister(ids...)
}
