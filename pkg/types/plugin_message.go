// Package types 定义 chanbridge 公共类型
//
// 本文件定义插件消息包。
package types

// PluginMessage 插件消息包
//
// Channel 是线上的频道名（新式或旧式），Data 是不透明的负载。
// 负载由包的外层帧负责定界，这里不再带长度前缀。
type PluginMessage struct {
	Channel string
	Data    []byte
}

// NewPluginMessage 创建插件消息
func NewPluginMessage(channel string, data []byte) *PluginMessage {
	return &PluginMessage{Channel: channel, Data: data}
}

// Len 返回负载长度
func (m *PluginMessage) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Data)
}

// Clone 返回深拷贝
func (m *PluginMessage) Clone() *PluginMessage {
	if m == nil {
		return nil
	}
	data := make([]byte, len(m.Data))
	copy(data, m.Data)
	return &PluginMessage{Channel: m.Channel, Data: data}
}
