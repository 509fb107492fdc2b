// Package audio holds the persistent audio root. Mixing and playback are
// external; this subsystem only tracks which theme should be playing so
// the choice survives region transitions.
package audio

import (
	"log"
	"sync"
)

// Root is the persistent audio subsystem.
type Root struct {
	mu    sync.Mutex
	theme string
	muted bool
}

// New creates an audio root with no theme playing.
func New() *Root {
	return &Root{}
}

// PlayTheme switches the active theme. Re-requesting the current theme is
// a no-op so region re-entries do not restart the track.
func (r *Root) PlayTheme(theme string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if theme == r.theme {
		return
	}
	r.theme = theme
	log.Printf("audio: theme -> %q", theme)
}

// CurrentTheme returns the active theme.
func (r *Root) CurrentTheme() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme
}

// SetMuted toggles output muting.
func (r *Root) SetMuted(muted bool) {
	r.mu.Lock()
	r.muted = muted
	r.mu.Unlock()
}

// Muted reports whether output is muted.
func (r *Root) Muted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.muted
}

// Destroy releases the root.
func (r *Root) Destroy() {}
