package singlet

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Lazy is a construct-once cell for a single value of type T. Get constructs
// the value on first use; every later call returns the same one. Unlike
// sync.Once, a failed construction leaves the cell empty so the next Get
// retries instead of pinning the error forever.
//
// Callers racing on an empty cell block on the constructing caller and all
// receive the value it produced. The ready flag is set only after the value
// is fully assigned, so no caller observes a half-constructed value.
type Lazy[T any] struct {
	factory func(ctx context.Context) (T, error)

	mu    sync.Mutex
	ready atomic.Bool
	val   T
}

// NewLazy creates a cell that constructs its value with factory on first Get.
// Panics if factory is nil.
func NewLazy[T any](factory func(ctx context.Context) (T, error)) *Lazy[T] {
	if factory == nil {
		panic("singlet: NewLazy requires a factory")
	}
	return &Lazy[T]{factory: factory}
}

// Get returns the cell's value, constructing it if needed. The factory's
// error is returned as-is to every caller blocked on that attempt's lock in
// turn; each such caller retries the construction itself.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	if l.ready.Load() {
		return l.val, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready.Load() {
		return l.val, nil
	}

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	v, err := l.factory(ctx)
	if err != nil {
		return zero, err
	}
	l.val = v
	l.ready.Store(true)
	return v, nil
}

// Ready reports whether the value has been constructed.
func (l *Lazy[T]) Ready() bool { return l.ready.Load() }
