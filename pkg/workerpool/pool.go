// Package workerpool 提供 goroutine 生命周期管理的 Worker Pool 实现
// 用于限制并发 goroutine 数量，防止资源泄漏
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrPoolFull 当任务队列已满时返回
	ErrPoolFull = errors.New("worker pool queue is full")
	// ErrPoolClosed 当 Worker Pool 已关闭时返回
	ErrPoolClosed = errors.New("worker pool is closed")
)

// Config Worker Pool 配置
type Config struct {
	// MaxWorkers 最大并发 worker 数量，默认 32
	MaxWorkers int
	// QueueSize 任务队列大小，默认 256
	QueueSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxWorkers: 32,
		QueueSize:  256,
	}
}

type task struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Pool 管理 goroutine 生命周期的 Worker Pool
type Pool struct {
	config Config
	logger *zap.Logger

	taskCh   chan task
	workerWg sync.WaitGroup

	activeCount atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// New 创建新的 Worker Pool
// cfg: 配置，如果为 nil 则使用默认配置
// logger: zap 日志器，如果为 nil 则使用 nop logger
func New(cfg *Config, logger *zap.Logger) *Pool {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 32
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		config: *cfg,
		logger: logger,
		taskCh: make(chan task, cfg.QueueSize),
	}

	for i := 0; i < cfg.MaxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	p.logger.Info("worker pool started",
		zap.Int("maxWorkers", cfg.MaxWorkers),
		zap.Int("queueSize", cfg.QueueSize))

	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()

	for t := range p.taskCh {
		p.execute(t)
	}
}

func (p *Pool) execute(t task) {
	p.activeCount.Add(1)
	defer p.activeCount.Add(-1)

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker pool task panic", zap.Any("panic", r), zap.Stack("stack"))
			if t.done != nil {
				t.done <- errors.New("task panicked")
			}
		}
	}()

	if t.ctx.Err() != nil {
		if t.done != nil {
			t.done <- t.ctx.Err()
		}
		return
	}

	err := t.fn(t.ctx)
	if t.done != nil {
		t.done <- err
	}
}

// Submit enqueues a task for asynchronous execution. Returns ErrPoolFull
// when the queue is saturated so callers can degrade instead of blocking.
// Submit 异步提交任务，队列饱和时返回 ErrPoolFull，调用方可降级而非阻塞。
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.taskCh <- task{ctx: ctx, fn: fn}:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait enqueues a task and blocks until it finishes or ctx is done
// SubmitWait 提交任务并阻塞等待完成或 ctx 结束
func (p *Pool) SubmitWait(ctx context.Context, fn func(context.Context) error) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPoolClosed
	}
	done := make(chan error, 1)
	select {
	case p.taskCh <- task{ctx: ctx, fn: fn, done: done}:
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		return ErrPoolFull
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ActiveCount 当前正在执行的任务数
func (p *Pool) ActiveCount() int64 {
	return p.activeCount.Load()
}

// Shutdown stops accepting tasks and waits for in-flight tasks to finish
// Shutdown 停止接收任务并等待在途任务完成
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.taskCh)
	p.mu.Unlock()

	p.workerWg.Wait()
	p.logger.Info("worker pool stopped")
}
