package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolRunsSubmittedTasks(t *testing.T) {
	pool := NewWorkerPool(4)

	var ran atomic.Int64
	for i := 0; i < 50; i++ {
		pool.Submit(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	pool.Shutdown()

	assert.Equal(t, int64(50), ran.Load())
}

func TestWorkerPoolDropsTasksAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Shutdown()

	var ran atomic.Bool
	pool.Submit(func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	time.Sleep(20 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestWorkerPoolContinuesAfterTaskError(t *testing.T) {
	pool := NewWorkerPool(1)

	var ran atomic.Bool
	pool.Submit(func(ctx context.Context) error {
		return assert.AnError
	})
	pool.Submit(func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	pool.Shutdown()
	assert.True(t, ran.Load())
}
