package snapshot

import (
	"log"
	"time"
)

// PlayerFragment is the player subsystem's contribution to a snapshot.
type PlayerFragment struct {
	Position         Vec3
	Health           int
	Stamina          float64
	DashUnlocked     bool
	UltimateUnlocked bool
}

// PlayerSource exposes the player state capture side.
type PlayerSource interface {
	CapturePlayerFragment() PlayerFragment
}

// InventorySource exposes the inventory capture side. The returned entries
// are positional; empty slots must be explicit.
type InventorySource interface {
	CaptureInventoryFragment() []SlotEntry
}

// StageSource exposes the current progression stage index.
type StageSource interface {
	CurrentStageIndex() int
}

// Sources are the subsystems a capture draws from. Any of them may be nil;
// Capture substitutes defaults so saving always succeeds.
type Sources struct {
	RegionID  string
	Capacity  int
	Player    PlayerSource
	Inventory InventorySource
	Stage     StageSource

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Capture assembles a complete snapshot from the available sources.
// It never blocks and never fails.
func Capture(src Sources) Snapshot {
	now := time.Now
	if src.Now != nil {
		now = src.Now
	}

	snap := Snapshot{
		SavedAt:   now().UTC().Format(TimeLayout),
		RegionID:  src.RegionID,
		Health:    DefaultHealth,
		Stamina:   DefaultStamina,
		Inventory: NormalizeInventory(nil, src.Capacity),
	}

	if src.Player != nil {
		fragment := src.Player.CapturePlayerFragment()
		snap.Position = fragment.Position
		snap.Health = fragment.Health
		snap.Stamina = fragment.Stamina
		snap.Abilities = Abilities{
			Dash:     fragment.DashUnlocked,
			Ultimate: fragment.UltimateUnlocked,
		}
	} else {
		log.Printf("snapshot: player source absent, capturing default vitals")
	}

	if src.Inventory != nil {
		snap.Inventory = NormalizeInventory(src.Inventory.CaptureInventoryFragment(), src.Capacity)
	} else {
		log.Printf("snapshot: inventory source absent, capturing empty inventory")
	}

	if src.Stage != nil {
		snap.Stage = src.Stage.CurrentStageIndex()
	} else {
		log.Printf("snapshot: stage source absent, capturing initial stage")
	}

	return snap
}
