// Package breaker 提供一个显式的熔断器组件
// 用于守护可能不可用的后端查询路径，时钟可注入，状态可观测
package breaker

import (
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	// StateClosed 正常放行
	StateClosed State = iota
	// StateOpen 熔断中，直接拒绝
	StateOpen
	// StateHalfOpen 试探放行一个请求
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config 熔断器配置
type Config struct {
	// FailureThreshold 连续失败多少次后打开，默认 3
	FailureThreshold int
	// OpenTimeout 打开后多久进入半开试探，默认 30 秒
	OpenTimeout time.Duration
	// Clock 时钟函数，测试时注入假时钟，默认 time.Now
	Clock func() time.Time
}

// Breaker 熔断器。替代"静态可用性标记 + 手工 TTL"的单例写法，
// 让退避行为成为一个可注入、可测试的组件。
type Breaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	clock            func() time.Time

	state        State
	failures     int
	openedAt     time.Time
	halfOpenBusy bool
}

// New 创建熔断器
func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Breaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		clock:            cfg.Clock,
		state:            StateClosed,
	}
}

// Allow reports whether a call may proceed. In the open state it returns
// false until OpenTimeout has elapsed, then admits a single probe.
// Allow 返回调用是否放行。打开状态下在 OpenTimeout 内拒绝，
// 超时后放行单个试探请求。
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true
	case StateOpen:
		if b.clock().Sub(b.openedAt) >= b.openTimeout {
			b.state = StateHalfOpen
			b.halfOpenBusy = true
			return true
		}
		return false
	case StateHalfOpen:
		if b.halfOpenBusy {
			return false
		}
		b.halfOpenBusy = true
		return true
	}
	return false
}

// MarkSuccess 记录一次成功，半开状态下恢复闭合
func (b *Breaker) MarkSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.halfOpenBusy = false
	b.state = StateClosed
}

// MarkFailure 记录一次失败，达到阈值或半开试探失败时打开
func (b *Breaker) MarkFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.halfOpenBusy = false

	if b.state == StateHalfOpen || b.failures >= b.failureThreshold {
		b.state = StateOpen
		b.openedAt = b.clock()
	}
}

// State 返回当前状态，用于观测与测试
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
