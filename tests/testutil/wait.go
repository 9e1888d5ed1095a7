package testutil

import (
	"context"
	"testing"
	"time"

	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
)

// WaitForCondition 等待条件满足或超时
//
// 返回：条件是否满足（超时返回 false）
func WaitForCondition(t *testing.T, timeout time.Duration, interval time.Duration, condition func() bool) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// 立即检查一次
	if condition() {
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if condition() {
				return true
			}
		}
	}
}

// Eventually 在指定时间内重试条件检查，超时则 fail 测试
//
// 使用默认间隔 10ms。
//
// 示例:
//
//	testutil.Eventually(t, time.Second, func() bool {
//	    return len(conn.Messages()) > 0
//	}, "应该收到应答")
func Eventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	t.Helper()
	if !WaitForCondition(t, timeout, 10*time.Millisecond, condition) {
		t.Fatalf("等待超时: %s", msg)
	}
}

// WaitForEvent 从订阅中读取下一个事件，超时则 fail 测试
func WaitForEvent(t *testing.T, sub pkgif.Subscription, timeout time.Duration) interface{} {
	t.Helper()

	select {
	case evt, ok := <-sub.Out():
		if !ok {
			t.Fatal("订阅已关闭")
		}
		return evt
	case <-time.After(timeout):
		t.Fatal("等待事件超时")
		return nil
	}
}

// WaitForValue 从通道读取下一个值，超时则 fail 测试
func WaitForValue[T any](t *testing.T, ch <-chan T, timeout time.Duration) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(timeout):
		t.Fatal("等待超时")
		var zero T
		return zero
	}
}

// NoValue 断言通道在 wait 内没有新值
func NoValue[T any](t *testing.T, ch <-chan T, wait time.Duration) {
	t.Helper()

	select {
	case v := <-ch:
		t.Fatalf("收到意外的值: %v", v)
	case <-time.After(wait):
	}
}
