package bungee

import (
	"fmt"
	"strconv"
)

// 子命令名
const (
	SubForward         = "Forward"
	SubForwardToPlayer = "ForwardToPlayer"
	SubConnect         = "Connect"
	SubConnectOther    = "ConnectOther"
	SubIP              = "IP"
	SubIPOther         = "IPOther"
	SubPlayerCount     = "PlayerCount"
	SubPlayerList      = "PlayerList"
	SubGetServers      = "GetServers"
	SubGetServer       = "GetServer"
	SubMessage         = "Message"
	SubMessageRaw      = "MessageRaw"
	SubUUID            = "UUID"
	SubUUIDOther       = "UUIDOther"
	SubServerIP        = "ServerIP"
	SubKickPlayer      = "KickPlayer"
)

// 保留的目标名，不是真实的服务器或玩家名
const (
	TargetAll    = "ALL"
	TargetOnline = "ONLINE"
)

// FieldKind 字段类型
type FieldKind uint8

const (
	// FieldUTF 16 位长度前缀字符串
	FieldUTF FieldKind = iota + 1
	// FieldShort 16 位整数
	FieldShort
	// FieldInt 32 位整数
	FieldInt
	// FieldRemaining 剩余全部字节
	FieldRemaining
)

// String 返回字段类型名
func (k FieldKind) String() string {
	switch k {
	case FieldUTF:
		return "utf"
	case FieldShort:
		return "short"
	case FieldInt:
		return "int"
	case FieldRemaining:
		return "remaining"
	default:
		return "invalid"
	}
}

// Field 单个字段
type Field struct {
	Kind FieldKind
	Str  string
	Int  int32
	Raw  []byte
}

// UTF 字符串字段
func UTF(s string) Field { return Field{Kind: FieldUTF, Str: s} }

// Short 16 位整数字段
func Short(v int16) Field { return Field{Kind: FieldShort, Int: int32(v)} }

// Int 32 位整数字段
func Int(v int32) Field { return Field{Kind: FieldInt, Int: v} }

// Raw 剩余字节字段
func Raw(b []byte) Field { return Field{Kind: FieldRemaining, Raw: b} }

// String 返回可读形式
func (f Field) String() string {
	switch f.Kind {
	case FieldUTF:
		return strconv.Quote(f.Str)
	case FieldShort, FieldInt:
		return strconv.Itoa(int(f.Int))
	case FieldRemaining:
		return fmt.Sprintf("%d raw bytes", len(f.Raw))
	default:
		return "invalid"
	}
}

// Layout 子命令的字段类型序列（不含子命令名本身）
type Layout []FieldKind

// Message 解码后的兼容协议消息
type Message struct {
	Subcommand string
	Fields     []Field
}

// Str 返回第 i 个字段的字符串值
func (m Message) Str(i int) string {
	if i < len(m.Fields) {
		return m.Fields[i].Str
	}
	return ""
}

// RawAt 返回第 i 个字段的字节值
func (m Message) RawAt(i int) []byte {
	if i < len(m.Fields) {
		return m.Fields[i].Raw
	}
	return nil
}

// Encode 编码消息：子命令名后依次写入各字段
func Encode(m Message) ([]byte, error) {
	w := NewWriter()
	if err := w.WriteUTF(m.Subcommand); err != nil {
		return nil, err
	}
	for i, f := range m.Fields {
		switch f.Kind {
		case FieldUTF:
			if err := w.WriteUTF(f.Str); err != nil {
				return nil, err
			}
		case FieldShort:
			w.WriteShort(int16(f.Int))
		case FieldInt:
			w.WriteInt(f.Int)
		case FieldRemaining:
			if i != len(m.Fields)-1 {
				return nil, fmt.Errorf("%w: remaining bytes must be the last field", ErrFieldMismatch)
			}
			w.WriteRaw(f.Raw)
		default:
			return nil, fmt.Errorf("%w: field %d has kind %v", ErrFieldMismatch, i, f.Kind)
		}
	}
	return w.Bytes(), nil
}

// LayoutFunc 按子命令名查找字段布局
type LayoutFunc func(subcommand string) (Layout, bool)

// Decode 解码消息
//
// 子命令名无法读取或字段截断时返回 ErrMalformedPayload；
// 布局未知时返回只含子命令名的消息和 ErrUnknownSubcommand。
// 布局之后多余的字节被忽略。
func Decode(data []byte, layout LayoutFunc) (Message, error) {
	r := NewReader(data)
	sub, err := r.ReadUTF()
	if err != nil {
		return Message{}, err
	}
	m := Message{Subcommand: sub}

	kinds, ok := layout(sub)
	if !ok {
		return m, ErrUnknownSubcommand
	}
	fields, err := readFields(r, kinds)
	if err != nil {
		return m, fmt.Errorf("%s: %w", sub, err)
	}
	m.Fields = fields
	return m, nil
}

func readFields(r *Reader, kinds Layout) ([]Field, error) {
	fields := make([]Field, 0, len(kinds))
	for _, k := range kinds {
		switch k {
		case FieldUTF:
			s, err := r.ReadUTF()
			if err != nil {
				return nil, err
			}
			fields = append(fields, UTF(s))
		case FieldShort:
			v, err := r.ReadShort()
			if err != nil {
				return nil, err
			}
			fields = append(fields, Short(v))
		case FieldInt:
			v, err := r.ReadInt()
			if err != nil {
				return nil, err
			}
			fields = append(fields, Int(v))
		case FieldRemaining:
			fields = append(fields, Raw(r.Remaining()))
		}
	}
	return fields, nil
}

var requestLayouts = map[string]Layout{
	SubForward:         {FieldUTF, FieldRemaining},
	SubForwardToPlayer: {FieldUTF, FieldRemaining},
	SubConnect:         {FieldUTF},
	SubConnectOther:    {FieldUTF, FieldUTF},
	SubIP:              {},
	SubIPOther:         {FieldUTF},
	SubPlayerCount:     {FieldUTF},
	SubPlayerList:      {FieldUTF},
	SubGetServers:      {},
	SubGetServer:       {},
	SubMessage:         {FieldUTF, FieldUTF},
	SubMessageRaw:      {FieldUTF, FieldUTF},
	SubUUID:            {},
	SubUUIDOther:       {FieldUTF},
	SubServerIP:        {FieldUTF},
	SubKickPlayer:      {FieldUTF, FieldUTF},
}

var replyLayouts = map[string]Layout{
	SubIP:          {FieldUTF, FieldInt},
	SubIPOther:     {FieldUTF, FieldUTF, FieldInt},
	SubPlayerCount: {FieldUTF, FieldInt},
	SubPlayerList:  {FieldUTF, FieldUTF},
	SubGetServers:  {FieldUTF},
	SubGetServer:   {FieldUTF},
	SubUUID:        {FieldUTF},
	SubUUIDOther:   {FieldUTF, FieldUTF},
	SubServerIP:    {FieldUTF, FieldUTF, FieldShort},
}

// RequestLayout 返回后端请求的字段布局
func RequestLayout(subcommand string) (Layout, bool) {
	l, ok := requestLayouts[subcommand]
	return l, ok
}

// ReplyLayout 返回代理应答的字段布局，无应答的子命令返回 false
func ReplyLayout(subcommand string) (Layout, bool) {
	l, ok := replyLayouts[subcommand]
	return l, ok
}

// Subcommands 返回所有已实现的子命令名
func Subcommands() []string {
	out := make([]string, 0, len(requestLayouts))
	for sub := range requestLayouts {
		out = append(out, sub)
	}
	return out
}
