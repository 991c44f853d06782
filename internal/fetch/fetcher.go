// Package fetch provides a small async-request state machine used by the
// console workflows and storefront views to track a remote load.
package fetch

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/gcg-eyewear/storefront/pkg/errors"
)

// State is the lifecycle phase of a fetch.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Snapshot is a race-free view of a fetcher at one instant.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   string
}

// Fetcher runs a load function and tracks its settlement. Each call to
// Fetch bumps a generation counter; a settlement only commits state when
// its generation is still the latest, so a slow earlier response can never
// overwrite the result of a later request.
type Fetcher[T any] struct {
	mu         sync.Mutex
	fn         func(context.Context) (T, error)
	generation uint64

	state State
	data  T
	err   string
}

// New creates an idle fetcher around the given load function.
func New[T any](fn func(context.Context) (T, error)) *Fetcher[T] {
	return &Fetcher[T]{fn: fn, state: StateIdle}
}

// Fetch runs the load function and commits the result unless a newer Fetch
// started in the meantime. Safe to call repeatedly and from multiple
// goroutines.
func (f *Fetcher[T]) Fetch(ctx context.Context) {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.state = StateLoading
	f.err = ""
	f.mu.Unlock()

	data, err := f.fn(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		// A newer request owns the state now; drop this settlement.
		return
	}
	if err != nil {
		f.state = StateError
		f.err = Message(err)
		return
	}
	f.state = StateSuccess
	f.data = data
}

// Go runs Fetch on its own goroutine and returns immediately.
func (f *Fetcher[T]) Go(ctx context.Context) {
	go f.Fetch(ctx)
}

// Snapshot returns the current state, data and error message.
func (f *Fetcher[T]) Snapshot() Snapshot[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot[T]{State: f.state, Data: f.data, Err: f.err}
}

// Reset returns the fetcher to idle and invalidates any in-flight request.
func (f *Fetcher[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	var zero T
	f.state = StateIdle
	f.data = zero
	f.err = ""
}

// Message extracts the operator-facing message from an API error.
func Message(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
