package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKeyLock(t *testing.T) {
	t.Run(`same key is serialized`, func(t *testing.T) {
		l := New()
		var active, maxActive, succeeded int32
		wg := sync.WaitGroup{}
		for k := 0; k < 10; k++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := l.WithDelay(context.Background(), "job", time.Second*5, func() error {
					current := atomic.AddInt32(&active, 1)
					for {
						prev := atomic.LoadInt32(&maxActive)
						if current <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, current) {
							break
						}
					}
					time.Sleep(time.Millisecond * 5)
					atomic.AddInt32(&active, -1)
					return nil
				})
				if ok && err == nil {
					atomic.AddInt32(&succeeded, 1)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(10), succeeded)
		require.Equal(t, int32(1), maxActive)
	})

	t.Run(`timeout while key is held`, func(t *testing.T) {
		l := New()
		started := make(chan struct{})
		done := make(chan struct{})
		go func() {
			_, _ = l.WithDelay(context.Background(), "job", time.Second, func() error {
				close(started)
				<-done
				return nil
			})
		}()
		<-started
		ok, err := l.WithDelay(context.Background(), "job", time.Millisecond*20, func() error {
			return errors.New("не должно выполняться")
		})
		require.False(t, ok)
		require.Nil(t, err)

		ok, err = l.WithDelay(context.Background(), "other", time.Millisecond*20, func() error { return nil })
		require.True(t, ok)
		require.Nil(t, err)
		close(done)
	})

	t.Run(`error is returned from safe code`, func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "job", time.Second, func() error {
			return errors.New("ошибка")
		})
		require.True(t, ok)
		require.EqualError(t, err, "ошибка")
	})
}
