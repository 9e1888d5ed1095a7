package eventbus

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Subscription 订阅
type Subscription struct {
	bus       *Bus
	typ       reflect.Type
	out       chan interface{}
	closeOnce sync.Once
}

// Out 返回事件通道
func (s *Subscription) Out() <-chan interface{} {
	return s.out
}

// Close 取消订阅
//
// 并发安全，可以多次调用。
func (s *Subscription) Close() error {
	s.bus.removeSub(s)
	s.closeOnce.Do(func() { close(s.out) })
	return nil
}

// Emitter 事件发射器
type Emitter struct {
	node   *node
	closed atomic.Bool
}

// Emit 发射事件
func (e *Emitter) Emit(event interface{}) error {
	if e.closed.Load() {
		return ErrEmitterClosed
	}
	e.node.emit(event)
	return nil
}

// Close 关闭发射器
func (e *Emitter) Close() error {
	e.closed.Store(true)
	return nil
}
