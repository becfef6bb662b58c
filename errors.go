package singlet

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for registry operations.
// All use prefix "singlet:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrNilFactory   = errors.New("singlet: nil factory")
	ErrWaitTimeout  = errors.New("singlet: timed out waiting for in-flight construction")
	ErrTypeMismatch = errors.New("singlet: stored instance type does not match requested type")
)

// ConstructError reports that the factory for a key failed. Every caller
// coalesced onto that construction attempt receives it; the key stays
// unconstructed, so a later call retries.
// Use errors.As to read the key and errors.Is to match the factory's error.
type ConstructError struct {
	Key Key
	Err error
}

// Error implements error.
func (e *ConstructError) Error() string {
	return fmt.Sprintf("singlet: constructing %q: %v", e.Key, e.Err)
}

// Unwrap returns the factory's error for errors.Is/errors.As.
func (e *ConstructError) Unwrap() error { return e.Err }

// WaitError reports that a caller gave up waiting for another caller's
// in-flight construction (see WithWaitTimeout). The construction itself keeps
// running and its result is stored for later requests.
type WaitError struct {
	Key     Key
	Timeout time.Duration
}

// Error implements error.
func (e *WaitError) Error() string {
	return fmt.Sprintf("singlet: gave up on %q after %s: construction still in flight", e.Key, e.Timeout)
}

// Unwrap returns ErrWaitTimeout for errors.Is.
func (e *WaitError) Unwrap() error { return ErrWaitTimeout }

// TypeMismatchError reports that the instance stored under a key is not of
// the type the generic Get requested.
type TypeMismatchError struct {
	Key    Key
	Stored any
}

// Error implements error.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("singlet: key %q holds %T, not the requested type", e.Key, e.Stored)
}

// Unwrap returns ErrTypeMismatch for errors.Is.
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// Compile-time checks that the wrapped error types implement error.
var (
	_ error = (*ConstructError)(nil)
	_ error = (*WaitError)(nil)
	_ error = (*TypeMismatchError)(nil)
)
