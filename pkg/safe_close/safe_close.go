// Package safe_close 提供多 goroutine 协同关闭的控制原语
// 所有通过 Attach 挂载的协程在收到关闭信号后完成收尾，WaitClosed 等待全部退出
package safe_close

import (
	"sync"
)

type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	err         error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach mounts a goroutine onto the close group. The callback receives a
// done func that must be called exactly once when the goroutine has fully
// cleaned up, and a channel that is closed when shutdown begins.
// Attach 将协程挂载到关闭组。回调收到的 done 在收尾完成后必须恰好调用
// 一次，closeSignal 在关闭开始时被 close。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal requests shutdown. The first non-nil error wins;
// subsequent calls are no-ops.
// SendCloseSignal 请求关闭。第一个非 nil 错误被保留，后续调用为空操作。
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// HasClosed reports whether shutdown has been requested
// HasClosed 返回是否已请求关闭
func (s *SafeClose) HasClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// CloseWait returns the channel closed when shutdown begins
// CloseWait 返回关闭开始时被 close 的通道
func (s *SafeClose) CloseWait() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached goroutine has called done,
// then returns the close error, if any.
// WaitClosed 阻塞直到所有挂载协程调用 done，返回关闭错误（若有）。
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
