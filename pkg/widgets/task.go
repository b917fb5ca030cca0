package widgets

import (
	"context"
	"sync"
	"time"
)

// task runs a function on a fixed interval in its own goroutine.
type task struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func (t *task) start(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.activeLocked() {
		return
	}
	if t.cancel != nil {
		t.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel, t.done = cancel, done

	go func() {
		defer close(done)
		fn(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

// stop cancels the running goroutine and waits for it to return.
func (t *task) stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *task) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activeLocked()
}

// activeLocked reports whether the goroutine is still looping. It ends on
// its own when the context given to start is cancelled.
func (t *task) activeLocked() bool {
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}
