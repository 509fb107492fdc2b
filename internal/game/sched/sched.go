// Package sched serializes all game-state mutation onto a single logical
// simulation tick queue.
//
// Asynchronous work (region loads, disk writes) resumes by scheduling a
// closure for a later tick rather than mutating state from another
// goroutine, which keeps the "wait one frame, then continue" flows of the
// game deterministic and testable.
package sched

import "sync"

type task struct {
	due uint64
	fn  func()
}

// Scheduler runs deferred closures in tick order. Tick is driven by the
// simulation loop (or a test) and executes every task due at the new tick,
// including tasks those tasks schedule for the same tick's successor.
type Scheduler struct {
	mu    sync.Mutex
	tick  uint64
	queue []task
}

// New creates a scheduler at tick zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current tick.
func (s *Scheduler) Now() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Defer schedules fn to run on the next tick.
func (s *Scheduler) Defer(fn func()) {
	s.DeferTicks(1, fn)
}

// DeferTicks schedules fn to run n ticks from now. n < 1 behaves as 1:
// nothing ever runs inline on the scheduling call.
func (s *Scheduler) DeferTicks(n int, fn func()) {
	if fn == nil {
		return
	}
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	s.queue = append(s.queue, task{due: s.tick + uint64(n), fn: fn})
	s.mu.Unlock()
}

// Tick advances the simulation by one quantum and runs every task due at
// the new tick, in scheduling order.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	s.tick++
	now := s.tick
	var due, rest []task
	for _, t := range s.queue {
		if t.due <= now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	s.queue = rest
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of scheduled tasks, for diagnostics.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
