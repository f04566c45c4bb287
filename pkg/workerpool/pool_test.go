package workerpool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolSubmit(t *testing.T) {
	p := New(&Config{MaxWorkers: 4, QueueSize: 16}, nil)
	defer p.Shutdown()

	var mu sync.Mutex
	seen := 0
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := p.Submit(context.Background(), func(ctx context.Context) error {
			defer wg.Done()
			mu.Lock()
			seen++
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.Equal(t, 10, seen)
}

func TestPoolSubmitWait(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 4}, nil)
	defer p.Shutdown()

	wantErr := errors.New("job failed")
	err := p.SubmitWait(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	assert.Equal(t, wantErr, err)

	err = p.SubmitWait(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestPoolFull(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Shutdown()

	block := make(chan struct{})
	// 占住唯一的 worker
	require.NoError(t, p.Submit(context.Background(), func(ctx context.Context) error {
		<-block
		return nil
	}))

	// 填满队列后继续提交必须立即拒绝而不是阻塞
	var full bool
	for i := 0; i < 4; i++ {
		if err := p.Submit(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
			assert.Equal(t, ErrPoolFull, err)
			full = true
			break
		}
	}
	assert.True(t, full)
	close(block)
}

func TestPoolCanceledContext(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 4}, nil)
	defer p.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.SubmitWait(ctx, func(ctx context.Context) error {
		t.Fatal("task must not run with a canceled context")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPoolShutdown(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 8}, nil)

	done := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func(ctx context.Context) error {
		time.Sleep(20 * time.Millisecond)
		close(done)
		return nil
	}))

	p.Shutdown()

	// Shutdown 等到在途任务结束才返回
	select {
	case <-done:
	default:
		t.Fatal("shutdown returned before the in-flight task finished")
	}

	assert.Equal(t, ErrPoolClosed, p.Submit(context.Background(), func(ctx context.Context) error { return nil }))
}
