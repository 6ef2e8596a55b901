package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("задача перезапускается после паники", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var calls int32
		done := make(chan struct{})
		go func() {
			defer close(done)
			NewInstance("test", 0, time.Millisecond).Run(ctx, func(ctx context.Context) {
				if atomic.AddInt32(&calls, 1) == 1 {
					panic("first run")
				}
				cancel()
			})
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker not stopped")
		}
		require.EqualValues(t, 2, atomic.LoadInt32(&calls))
	})

	t.Run("отмененный контекст", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var calls int32
		NewInstance("test", time.Hour, time.Hour).Run(ctx, func(ctx context.Context) {
			atomic.AddInt32(&calls, 1)
		})
		require.Zero(t, atomic.LoadInt32(&calls))
	})
}
