package region

import "context"

// Readiness is the completion signal of an asynchronous region load.
// Done is closed once the region either finished loading and ran its local
// startup logic, or failed; Err distinguishes the two afterwards.
type Readiness interface {
	Done() <-chan struct{}
	Err() error
}

// Runtime is the region engine the core drives. It owns asset loading and
// region activation; the core only consumes the completion signal.
type Runtime interface {
	// LoadRegion starts loading a region and returns its readiness signal.
	// All candidate singleton instances spawned by the region announce
	// themselves to the registry before the signal completes.
	LoadRegion(ctx context.Context, id ID) Readiness
	// CurrentRegionID returns the active region.
	CurrentRegionID() ID
}

// Signal is a reusable Readiness implementation for runtimes.
type Signal struct {
	done chan struct{}
	err  error
}

// NewSignal creates a pending readiness signal.
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Complete resolves the signal; a nil error means the region is ready.
// Complete must be called at most once.
func (s *Signal) Complete(err error) {
	s.err = err
	close(s.done)
}

// Done implements Readiness.
func (s *Signal) Done() <-chan struct{} { return s.done }

// Err implements Readiness.
func (s *Signal) Err() error { return s.err }
