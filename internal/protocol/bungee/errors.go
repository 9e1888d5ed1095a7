package bungee

import "errors"

// 错误定义
var (
	// ErrMalformedPayload 负载截断或字段无法解析
	ErrMalformedPayload = errors.New("bungee: malformed payload")

	// ErrStringTooLong 字符串超过 16 位长度前缀能表示的范围
	ErrStringTooLong = errors.New("bungee: string too long")

	// ErrUnknownSubcommand 子命令未实现
	ErrUnknownSubcommand = errors.New("bungee: unknown subcommand")

	// ErrFieldMismatch 字段与布局不符
	ErrFieldMismatch = errors.New("bungee: field does not match layout")

	// ErrNilDirectory 未提供代理目录
	ErrNilDirectory = errors.New("bungee: directory is nil")

	// ErrNilRegistrar 未提供频道注册表
	ErrNilRegistrar = errors.New("bungee: registrar is nil")
)
