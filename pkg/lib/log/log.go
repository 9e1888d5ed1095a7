// Package log 提供 chanbridge 对外的日志入口
//
// 组件日志统一走 internal/util/logger 的子系统 Handler，
// 级别与格式由 CHANBRIDGE_LOG_* 环境变量或配置文件控制。
package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/chanbridge/go-chanbridge/internal/util/logger"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// SetOutput 设置日志输出目标
//
// 已创建的组件 logger 立即切换到新的输出，常用于将日志输出到文件。
//
// 示例：
//
//	file, _ := os.OpenFile("chanbridge.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
//	log.SetOutput(file)
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Configure 应用配置文件中的日志级别与格式，CHANBRIDGE_LOG_* 环境变量优先
func Configure(levelSpec, format string) {
	logger.Configure(levelSpec, format)
}

// SetLevel 设置所有组件的日志级别
func SetLevel(level slog.Level) {
	logger.SetGlobalLevel(level)
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 首次日志调用时才创建子系统 logger，包级变量初始化时
// 不会读取环境变量配置。
//
// 使用方式：
//
//	var logger = log.Logger("protocol/bungee")  // 返回 *LazyLogger
//	logger.Info("hello")
type LazyLogger struct {
	component string
}

func (l *LazyLogger) get() *slog.Logger {
	return logger.Logger(l.component)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) { l.get().Debug(msg, args...) }

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) { l.get().Info(msg, args...) }

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) { l.get().Warn(msg, args...) }

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) { l.get().Error(msg, args...) }

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.get().DebugContext(ctx, msg, args...)
}

// WarnContext 带 context 的 Warn 日志
func (l *LazyLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.get().WarnContext(ctx, msg, args...)
}

// With 返回带有附加属性的 logger
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return l.get().With(args...)
}

// Enabled 检查指定级别是否启用
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return l.get().Enabled(context.Background(), level)
}

// Logger 创建组件 logger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// TruncateID 截断 ID 用于日志显示
//
// 玩家 UUID 等长 ID 在日志中只保留前 n 个字符。
func TruncateID(id string, n int) string {
	if n <= 0 || len(id) <= n {
		return id
	}
	return id[:n]
}
