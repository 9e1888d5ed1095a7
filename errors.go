package chanbridge

import "errors"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted Bridge 未启动
	ErrNotStarted = errors.New("bridge not started")

	// ErrAlreadyStarted Bridge 已启动
	ErrAlreadyStarted = errors.New("bridge already started")

	// ErrBridgeClosed Bridge 已关闭
	ErrBridgeClosed = errors.New("bridge closed")

	// ────────────────────────────────────────────────────────────────────────
	// 选项错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNoDirectory 未通过 WithDirectory 提供代理目录
	ErrNoDirectory = errors.New("directory is required")

	// ErrInvalidOption 选项参数无效
	ErrInvalidOption = errors.New("invalid option")
)
