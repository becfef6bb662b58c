package singlet

import "time"

// Option configures a Registry (functional options pattern).
type Option func(*Registry)

// WithWaitTimeout bounds how long a caller blocks on another caller's
// in-flight construction of the same key. Zero, the default, waits
// indefinitely. A timed-out caller receives a *WaitError; the construction is
// not cancelled and its instance is stored for later requests.
func WithWaitTimeout(d time.Duration) Option {
	return func(r *Registry) { r.waitTimeout = d }
}
