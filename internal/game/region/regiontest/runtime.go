// Package regiontest provides a scripted region runtime for tests and
// local tooling that run without a real asset pipeline.
package regiontest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/region"
)

// StubRuntime is a region.Runtime whose loads complete only when the test
// resolves them, so readiness ordering is fully deterministic.
type StubRuntime struct {
	mu      sync.Mutex
	current region.ID
	loads   []region.ID
	pending map[region.ID]*region.Signal

	// SpawnHook runs when a load finishes successfully, before its
	// readiness signal completes. Tests register the singleton
	// candidates the region would spawn here.
	SpawnHook func(id region.ID)
}

// NewStubRuntime creates a runtime with the given active region.
func NewStubRuntime(current region.ID) *StubRuntime {
	return &StubRuntime{
		current: current,
		pending: make(map[region.ID]*region.Signal),
	}
}

// LoadRegion implements region.Runtime.
func (r *StubRuntime) LoadRegion(_ context.Context, id region.ID) region.Readiness {
	r.mu.Lock()
	defer r.mu.Unlock()
	signal := region.NewSignal()
	r.loads = append(r.loads, id)
	r.pending[id] = signal
	return signal
}

// CurrentRegionID implements region.Runtime.
func (r *StubRuntime) CurrentRegionID() region.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// SetCurrent moves the active region without a load, as if the player
// walked there through a door.
func (r *StubRuntime) SetCurrent(id region.ID) {
	r.mu.Lock()
	r.current = id
	r.mu.Unlock()
}

// FinishLoad resolves a pending load. On success the region becomes active
// and the spawn hook runs before the readiness signal completes.
func (r *StubRuntime) FinishLoad(id region.ID, err error) error {
	r.mu.Lock()
	signal, ok := r.pending[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("no pending load for region %s", id)
	}
	delete(r.pending, id)
	hook := r.SpawnHook
	if err == nil {
		r.current = id
	}
	r.mu.Unlock()

	if err == nil && hook != nil {
		hook(id)
	}
	signal.Complete(err)
	return nil
}

// Loads returns the order of LoadRegion calls so far.
func (r *StubRuntime) Loads() []region.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]region.ID(nil), r.loads...)
}

// PendingCount returns the number of unresolved loads.
func (r *StubRuntime) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
