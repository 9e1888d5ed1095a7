package channel

import "errors"

// 频道注册表错误定义
var (
	// ErrEmptyIdentifiers Register/Unregister 未传入任何标识符
	ErrEmptyIdentifiers = errors.New("channel: no identifiers given")

	// ErrInvalidRemap 重映射目标不是合法的新式标识符
	ErrInvalidRemap = errors.New("channel: invalid remap")
)
