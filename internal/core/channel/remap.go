package channel

import (
	"fmt"
	"strings"

	ch "github.com/chanbridge/go-chanbridge/pkg/channel"
)

// LegacyNamespace 未在重映射表中的旧式频道投影到新式视图时使用的命名空间
const LegacyNamespace = "legacy"

// builtinRemaps 内置重映射表，键为小写旧式名称
var builtinRemaps = map[string]string{
	"bungeecord": "bungeecord:main",
	"register":   "minecraft:register",
	"unregister": "minecraft:unregister",
	"mc|brand":   "minecraft:brand",
}

// DefaultRemaps 返回内置重映射表的副本
func DefaultRemaps() map[string]string {
	out := make(map[string]string, len(builtinRemaps))
	for k, v := range builtinRemaps {
		out[k] = v
	}
	return out
}

// remapTable 旧式名称到新式规范形式的映射，构造后只读
type remapTable map[string]string

// add 添加一条映射，legacy 按小写存储，modern 必须是合法新式标识符
func (t remapTable) add(legacy, modern string) error {
	if legacy == "" {
		return fmt.Errorf("%w: empty legacy name", ErrInvalidRemap)
	}
	id, err := ch.FromID(modern)
	if err != nil || !id.IsModern() {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidRemap, legacy, modern)
	}
	t[strings.ToLower(legacy)] = id.ID()
	return nil
}

// modernFor 旧式名称在新式视图中的投影
func (t remapTable) modernFor(name string) string {
	lower := strings.ToLower(name)
	if modern, ok := t[lower]; ok {
		return modern
	}
	return LegacyNamespace + ":" + lower
}
