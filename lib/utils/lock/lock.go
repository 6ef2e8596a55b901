package lock

import (
	"context"
	"sync"
	"time"
)

// KeyLock - взаимоисключение по ключу в пределах одного экземпляра сервиса
type KeyLock struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func New() *KeyLock {
	return &KeyLock{
		held: map[string]chan struct{}{},
	}
}

var defaultLock = New()

// Default - блокировка, общая для обработчиков одного экземпляра сервиса
func Default() *KeyLock {
	return defaultLock
}

func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	return defaultLock.WithDelay(ctx, key, wait, safeCode)
}

// WithDelay выполняет safeCode под блокировкой ключа.
// Если блокировку не удалось получить за wait (или контекст завершен), возвращает success=false.
func (l *KeyLock) WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		released, acquired := l.tryAcquire(key)
		if acquired {
			break
		}
		select {
		case <-released:
		case <-timer.C:
			return false, nil
		case <-ctx.Done():
			return false, nil
		}
	}
	defer l.release(key)
	return true, safeCode()
}

func (l *KeyLock) tryAcquire(key string) (released <-chan struct{}, acquired bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ch, ok := l.held[key]; ok {
		return ch, false
	}
	l.held[key] = make(chan struct{})
	return nil, true
}

func (l *KeyLock) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ch, ok := l.held[key]; ok {
		close(ch)
		delete(l.held, key)
	}
}
