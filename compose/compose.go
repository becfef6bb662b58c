package compose

import (
	"fmt"

	"go.uber.org/multierr"
)

// Initializer applies one feature's setup to the host. Features mutate the
// host only through what *T exposes, never through assumed layout of other
// features' state.
type Initializer[T any] func(host *T) error

// Init applies initializers to host in argument order, stopping at the first
// failure. A failure is wrapped with the failing initializer's position so
// the constructor can tell which feature broke.
func Init[T any](host *T, inits ...Initializer[T]) error {
	if host == nil {
		return fmt.Errorf("compose: nil host")
	}
	for i, init := range inits {
		if init == nil {
			return fmt.Errorf("compose: initializer %d is nil", i)
		}
		if err := init(host); err != nil {
			return fmt.Errorf("compose: initializer %d: %w", i, err)
		}
	}
	return nil
}

// InitAll applies every initializer in argument order regardless of failures
// and returns the aggregated errors. Use it for validation-style features
// where reporting every problem at once beats failing fast.
func InitAll[T any](host *T, inits ...Initializer[T]) error {
	if host == nil {
		return fmt.Errorf("compose: nil host")
	}
	var errs error
	for i, init := range inits {
		if init == nil {
			errs = multierr.Append(errs, fmt.Errorf("compose: initializer %d is nil", i))
			continue
		}
		if err := init(host); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("compose: initializer %d: %w", i, err))
		}
	}
	return errs
}
