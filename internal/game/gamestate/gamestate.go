// Package gamestate tracks session-scoped bookkeeping that is not part of
// a save: score and the game-over flag.
package gamestate

import "sync"

// Tracker is the persistent game-state subsystem.
type Tracker struct {
	mu       sync.Mutex
	score    int
	gameOver bool
}

// New creates a fresh tracker.
func New() *Tracker {
	return &Tracker{}
}

// AddScore adds points to the running score.
func (t *Tracker) AddScore(points int) {
	t.mu.Lock()
	t.score += points
	t.mu.Unlock()
}

// Score returns the running score.
func (t *Tracker) Score() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.score
}

// SetGameOver marks the session as lost.
func (t *Tracker) SetGameOver() {
	t.mu.Lock()
	t.gameOver = true
	t.mu.Unlock()
}

// GameOver reports whether the session is lost.
func (t *Tracker) GameOver() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gameOver
}

// ResetForNewGame clears session bookkeeping when the player returns to
// the title region and starts over.
func (t *Tracker) ResetForNewGame() {
	t.mu.Lock()
	t.score = 0
	t.gameOver = false
	t.mu.Unlock()
}

// Destroy releases the tracker.
func (t *Tracker) Destroy() {}
