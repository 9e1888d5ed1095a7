package channel

import (
	"fmt"
	"strings"

	"go.minekube.com/common/minecraft/key"
)

// Kind 标识符形式
type Kind uint8

const (
	// KindInvalid 零值，未初始化的标识符
	KindInvalid Kind = iota
	// KindModern 新式 namespace:path
	KindModern
	// KindLegacy 旧式裸名称
	KindLegacy
)

// String 返回形式名称
func (k Kind) String() string {
	switch k {
	case KindModern:
		return "modern"
	case KindLegacy:
		return "legacy"
	default:
		return "invalid"
	}
}

// Identifier 频道标识符
//
// 新式标识符使用 namespace/path，旧式标识符使用 name。
type Identifier struct {
	kind      Kind
	namespace string
	path      string
	name      string
}

// FromKey 创建新式标识符
func FromKey(namespace, path string) (Identifier, error) {
	if err := ValidateNamespace(namespace); err != nil {
		return Identifier{}, err
	}
	if err := ValidatePath(path); err != nil {
		return Identifier{}, err
	}
	return Identifier{kind: KindModern, namespace: namespace, path: path}, nil
}

// MustFromKey 创建新式标识符，失败时 panic
//
// 仅用于包级常量。
func MustFromKey(namespace, path string) Identifier {
	id, err := FromKey(namespace, path)
	if err != nil {
		panic(err)
	}
	return id
}

// FromMinecraftKey 从 key.Key 创建新式标识符
func FromMinecraftKey(k key.Key) (Identifier, error) {
	if k == nil {
		return Identifier{}, fmt.Errorf("%w: nil key", ErrInvalidIdentifier)
	}
	return FromKey(k.Namespace(), k.Value())
}

// Legacy 创建旧式标识符
func Legacy(name string) (Identifier, error) {
	if name == "" {
		return Identifier{}, fmt.Errorf("%w: empty legacy name", ErrInvalidIdentifier)
	}
	return Identifier{kind: KindLegacy, name: name}, nil
}

// MustLegacy 创建旧式标识符，失败时 panic
func MustLegacy(name string) Identifier {
	id, err := Legacy(name)
	if err != nil {
		panic(err)
	}
	return id
}

// FromID 从线上频道名解析标识符
//
// 含有 ':' 且两侧均合法的字符串解析为新式标识符，其余非空字符串按旧式处理。
// REGISTER 负载中的频道名以及命令行输入都走这里。
func FromID(id string) (Identifier, error) {
	if id == "" {
		return Identifier{}, fmt.Errorf("%w: empty channel id", ErrInvalidIdentifier)
	}
	if ns, path, ok := strings.Cut(id, ":"); ok {
		if modern, err := FromKey(ns, path); err == nil {
			return modern, nil
		}
	}
	return Legacy(id)
}

// Kind 返回标识符形式
func (i Identifier) Kind() Kind {
	return i.kind
}

// IsModern 是否为新式标识符
func (i Identifier) IsModern() bool {
	return i.kind == KindModern
}

// IsLegacy 是否为旧式标识符
func (i Identifier) IsLegacy() bool {
	return i.kind == KindLegacy
}

// IsValid 是否为已初始化的标识符
func (i Identifier) IsValid() bool {
	return i.kind != KindInvalid
}

// Namespace 新式标识符的命名空间，旧式为空
func (i Identifier) Namespace() string {
	return i.namespace
}

// Path 新式标识符的路径，旧式为空
func (i Identifier) Path() string {
	return i.path
}

// Name 旧式标识符的名称，新式为空
func (i Identifier) Name() string {
	return i.name
}

// ID 返回线上使用的规范形式
func (i Identifier) ID() string {
	switch i.kind {
	case KindModern:
		return i.namespace + ":" + i.path
	case KindLegacy:
		return i.name
	default:
		return ""
	}
}

// CanonicalForm 是 ID 的别名
func (i Identifier) CanonicalForm() string {
	return i.ID()
}

// Key 返回新式标识符对应的 key.Key，旧式标识符返回 nil
func (i Identifier) Key() key.Key {
	if i.kind != KindModern {
		return nil
	}
	return key.New(i.namespace, i.path)
}

// Equal 种类与规范形式都相同时相等
//
// 与注册表的键一致：旧式名称恰好写成 namespace:path 时不等于同名的新式标识符。
func (i Identifier) Equal(other Identifier) bool {
	return i == other
}

// String 返回可读形式
func (i Identifier) String() string {
	switch i.kind {
	case KindModern:
		return i.ID()
	case KindLegacy:
		return "legacy(" + i.name + ")"
	default:
		return "invalid"
	}
}
