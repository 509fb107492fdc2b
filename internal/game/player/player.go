// Package player holds the persistent player avatar: position, vitals,
// unlocked abilities, and the carried inventory.
package player

import (
	"sync"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/inventory"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
)

// Avatar is the long-lived player subsystem. It survives region
// transitions once accepted by the singleton registry.
type Avatar struct {
	mu       sync.Mutex
	position snapshot.Vec3
	health   int
	stamina  float64
	dash     bool
	ultimate bool

	inventory *inventory.Inventory
}

// New creates an avatar at full vitals carrying the given inventory.
func New(inv *inventory.Inventory) *Avatar {
	return &Avatar{
		health:    snapshot.DefaultHealth,
		stamina:   snapshot.DefaultStamina,
		inventory: inv,
	}
}

// Inventory returns the carried inventory.
func (a *Avatar) Inventory() *inventory.Inventory {
	return a.inventory
}

// MoveTo places the avatar at a world position.
func (a *Avatar) MoveTo(pos snapshot.Vec3) {
	a.mu.Lock()
	a.position = pos
	a.mu.Unlock()
}

// SetVitals sets health and stamina directly.
func (a *Avatar) SetVitals(health int, stamina float64) {
	a.mu.Lock()
	a.health = health
	a.stamina = stamina
	a.mu.Unlock()
}

// UnlockDash grants the dash ability.
func (a *Avatar) UnlockDash() {
	a.mu.Lock()
	a.dash = true
	a.mu.Unlock()
}

// UnlockUltimate grants the ultimate ability.
func (a *Avatar) UnlockUltimate() {
	a.mu.Lock()
	a.ultimate = true
	a.mu.Unlock()
}

// CapturePlayerFragment returns the avatar's contribution to a snapshot.
func (a *Avatar) CapturePlayerFragment() snapshot.PlayerFragment {
	a.mu.Lock()
	defer a.mu.Unlock()
	return snapshot.PlayerFragment{
		Position:         a.position,
		Health:           a.health,
		Stamina:          a.stamina,
		DashUnlocked:     a.dash,
		UltimateUnlocked: a.ultimate,
	}
}

// ApplyPlayerFragment restores the avatar from a snapshot fragment.
func (a *Avatar) ApplyPlayerFragment(f snapshot.PlayerFragment) {
	a.mu.Lock()
	a.position = f.Position
	a.health = f.Health
	a.stamina = f.Stamina
	a.dash = f.DashUnlocked
	a.ultimate = f.UltimateUnlocked
	a.mu.Unlock()
}

// CaptureInventoryFragment delegates to the carried inventory.
func (a *Avatar) CaptureInventoryFragment() []snapshot.SlotEntry {
	return a.inventory.CaptureInventoryFragment()
}

// ApplyInventoryFragment delegates to the carried inventory.
func (a *Avatar) ApplyInventoryFragment(entries []snapshot.SlotEntry) {
	a.inventory.ApplyInventoryFragment(entries)
}

// Destroy releases the avatar. Rejected duplicate candidates call this on
// themselves; the held instance is never destroyed by the registry.
func (a *Avatar) Destroy() {
	a.mu.Lock()
	a.inventory = nil
	a.mu.Unlock()
}
