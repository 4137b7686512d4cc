// internal/services/page_task.go
package services

import (
	"context"
	"errors"
)

// ErrPageClosed is what Wait returns once a page task has been cancelled.
var ErrPageClosed = errors.New("page_closed")

// PageTask is one page's data load, bound to the page being on screen.
// Cancel it when the page goes away; its result is then never delivered.
type PageTask[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	result T
	err    error
}

// StartPage runs load in the background under a context derived from ctx.
func StartPage[T any](ctx context.Context, load func(context.Context) (T, error)) *PageTask[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &PageTask[T]{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		res, err := load(ctx)
		if ctx.Err() != nil {
			var zero T
			t.result, t.err = zero, ErrPageClosed
			return
		}
		t.result, t.err = res, err
		cancel()
	}()
	return t
}

// Cancel abandons the load. Safe to call more than once.
func (t *PageTask[T]) Cancel() {
	t.cancel()
}

// Done is closed once the task has finished or been cancelled.
func (t *PageTask[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the load finishes. A cancelled task yields ErrPageClosed.
func (t *PageTask[T]) Wait() (T, error) {
	<-t.done
	return t.result, t.err
}
