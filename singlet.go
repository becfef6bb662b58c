package singlet

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

// Factory constructs the instance for a key. The registry invokes it at most
// once per key for its lifetime, except after a failed construction: a factory
// error is never cached, so the next request for the key retries.
// Constructor arguments are captured by the caller as a closure; only the
// winning call's factory ever runs, so only its arguments are used.
type Factory func(ctx context.Context) (any, error)

// Registry maps each Key to exactly one instance, constructed lazily on the
// first request and shared by every later one. Safe for concurrent use:
// callers racing on an unconstructed key coalesce into a single construction,
// losers block until the winner finishes, and no caller ever observes a
// second, independently constructed instance for the same key.
type Registry struct {
	waitTimeout time.Duration

	mu        sync.RWMutex
	instances map[Key]any

	flights singleflight.Group

	hits          atomic.Int64
	constructions atomic.Int64
	failures      atomic.Int64
}

// New creates an empty Registry. Options (e.g. WithWaitTimeout) configure
// waiting behavior.
func New(opts ...Option) *Registry {
	r := &Registry{instances: make(map[Key]any)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// detachCancel returns a context that is not cancelled when parent is
// cancelled, but still respects parent's deadline. Construction outlives the
// caller that started it: waiters joined the same flight and must receive a
// usable instance even when the winning caller gives up.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx) // no-op cancel when no deadline, but same signature
}

// Get returns the instance for key, constructing it with factory if this is
// the first request. Concurrent callers for the same key share one
// construction; callers for distinct keys never block each other.
//
// A factory failure is delivered to every caller waiting on that construction
// as a *ConstructError and the key stays unconstructed, so a later call
// retries. A cancelled ctx aborts the caller's wait, not an in-flight
// construction: the winner's factory runs on a detached context and its
// result is stored for whoever asks next.
func (r *Registry) Get(ctx context.Context, key Key, factory Factory) (any, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	r.mu.RLock()
	v, ok := r.instances[key]
	r.mu.RUnlock()
	if ok {
		r.hits.Inc()
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := r.flights.DoChan(key.flightKey(), func() (any, error) {
		// A flight that finished between our read miss and this one may have
		// stored the instance already; construct only on a genuine miss.
		r.mu.RLock()
		v, ok := r.instances[key]
		r.mu.RUnlock()
		if ok {
			r.hits.Inc()
			return v, nil
		}
		constructCtx, cancel := detachCancel(ctx)
		defer cancel()
		v, err := factory(constructCtx)
		if err != nil {
			r.failures.Inc()
			return nil, &ConstructError{Key: key, Err: err}
		}
		r.mu.Lock()
		r.instances[key] = v
		r.mu.Unlock()
		r.constructions.Inc()
		return v, nil
	})

	var timeout <-chan time.Time
	if r.waitTimeout > 0 {
		t := time.NewTimer(r.waitTimeout)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout:
		return nil, &WaitError{Key: key, Timeout: r.waitTimeout}
	}
}

// Peek returns the instance for key if it is already constructed. It never
// triggers construction and never blocks on one in flight.
func (r *Registry) Peek(key Key) (any, bool) {
	r.mu.RLock()
	v, ok := r.instances[key]
	r.mu.RUnlock()
	return v, ok
}

// Len returns the number of constructed instances.
func (r *Registry) Len() int {
	r.mu.RLock()
	n := len(r.instances)
	r.mu.RUnlock()
	return n
}

// Keys returns the keys of all constructed instances in deterministic
// (lexicographic) order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	keys := make([]Key, 0, len(r.instances))
	for k := range r.instances {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type == keys[j].Type {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Type < keys[j].Type
	})
	return keys
}

// Evict removes the constructed instance for key, so the next Get constructs
// a fresh one. Intended for tests and hot reload; references handed out
// earlier keep pointing at the old instance, which breaks the single-instance
// guarantee for this key from the moment of eviction.
func (r *Registry) Evict(key Key) {
	r.mu.Lock()
	delete(r.instances, key)
	r.mu.Unlock()
}

// Reset drops every constructed instance. Same caveats as Evict.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.instances = make(map[Key]any)
	r.mu.Unlock()
}

// Stats is a snapshot of registry counters.
type Stats struct {
	Hits          int64 // requests served from an already constructed instance
	Constructions int64 // successful factory runs
	Failures      int64 // failed factory runs
}

// Stats returns a snapshot of the registry's counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Hits:          r.hits.Load(),
		Constructions: r.constructions.Load(),
		Failures:      r.failures.Load(),
	}
}

// Get returns the instance for key from reg, typed as T. It wraps
// Registry.Get; ErrTypeMismatch is reported when the stored instance is not a
// T, i.e. two call sites used the same key for different types.
func Get[T any](ctx context.Context, reg *Registry, key Key, factory func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if factory == nil {
		return zero, ErrNilFactory
	}
	v, err := reg.Get(ctx, key, func(ctx context.Context) (any, error) {
		return factory(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Key: key, Stored: v}
	}
	return typed, nil
}

// Global registry instance and initialization guard.
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide shared Registry, creating it on first
// call. Callers that need options or an isolated lifetime should use New.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}
