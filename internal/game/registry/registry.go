// Package registry arbitrates the long-lived subsystem singletons that
// survive region transitions.
//
// Every candidate instance of a persistent kind announces itself on spawn.
// The first one wins and is carried across regions; later candidates are
// rejected and must be destroyed by their caller. This replaces the
// first-one-wins checks that would otherwise be repeated inside every
// persistent subsystem.
package registry

import (
	"log"
	"sync"
)

// Kind identifies one persistent subsystem.
type Kind string

const (
	KindPlayer       Kind = "player"
	KindQuestTracker Kind = "quest_tracker"
	KindGameState    Kind = "game_state"
	KindAudioRoot    Kind = "audio_root"
	KindSaveStore    Kind = "save_store"
)

// Kinds lists every persistent kind in registration order.
func Kinds() []Kind {
	return []Kind{KindPlayer, KindQuestTracker, KindGameState, KindAudioRoot, KindSaveStore}
}

// Instance is a live persistent subsystem held by the registry.
type Instance interface {
	// Destroy releases the instance's resources. The registry never calls
	// it on the held instance; rejected candidates must call it on
	// themselves.
	Destroy()
}

// Result is the outcome of a registration attempt.
type Result struct {
	Accepted bool
	// Existing is the held instance when the attempt was rejected.
	Existing Instance
}

// Registry is the single arbiter of "is there already one of these".
// Each kind is empty until its first accepted registration, stays held
// across any number of region transitions, and returns to empty only via
// an explicit Unregister.
type Registry struct {
	mu   sync.Mutex
	held map[Kind]Instance
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{held: make(map[Kind]Instance)}
}

// RegisterOrReject registers a candidate instance for a kind. The first
// candidate per kind is accepted and held; every later candidate is
// rejected and must be destroyed by the caller without further use.
func (r *Registry) RegisterOrReject(kind Kind, candidate Instance) Result {
	if candidate == nil {
		return Result{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.held[kind]; ok {
		// Expected during region transitions: the incoming region spawns
		// its own copy of a subsystem that already survived.
		log.Printf("registry: duplicate %s candidate rejected", kind)
		return Result{Existing: existing}
	}

	r.held[kind] = candidate
	log.Printf("registry: %s registered, persisting across regions", kind)
	return Result{Accepted: true}
}

// Get returns the held instance for a kind, if any.
func (r *Registry) Get(kind Kind) (Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	instance, ok := r.held[kind]
	return instance, ok
}

// Unregister removes the held instance for a kind. Called only on
// permanent teardown (process exit, new-game replacement), never on
// ordinary region transitions.
func (r *Registry) Unregister(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.held[kind]; !ok {
		return
	}
	delete(r.held, kind)
	log.Printf("registry: %s unregistered", kind)
}

// Held reports whether the kind currently has a held instance.
func (r *Registry) Held(kind Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.held[kind]
	return ok
}
