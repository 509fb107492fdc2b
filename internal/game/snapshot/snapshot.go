// Package snapshot defines the serializable record of one save.
//
// A Snapshot is immutable once written. Capture never blocks and never
// fails: any absent source subsystem contributes a documented default so a
// save request always produces a complete record.
package snapshot

// TimeLayout is the persisted format of the saved_at field.
const TimeLayout = "2006-01-02 15:04:05"

// Default values substituted when a source subsystem is absent.
const (
	DefaultHealth  = 100
	DefaultStamina = 100.0
)

// Vec3 is a 3-component world position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SlotEntry is one inventory slot. Empty slots are explicit zero entries so
// slot position survives a round trip.
type SlotEntry struct {
	ItemID     string `json:"item_id"`
	StackCount int    `json:"stack_count"`
}

// IsEmpty reports whether the slot holds no item.
func (e SlotEntry) IsEmpty() bool {
	return e.ItemID == ""
}

// Abilities are the player's unlocked ability flags.
type Abilities struct {
	Dash     bool `json:"dash"`
	Ultimate bool `json:"ultimate"`
}

// Snapshot is the complete serializable state of one save slot.
type Snapshot struct {
	SavedAt   string      `json:"saved_at"`
	RegionID  string      `json:"region_id"`
	Position  Vec3        `json:"position"`
	Health    int         `json:"health"`
	Stamina   float64     `json:"stamina"`
	Abilities Abilities   `json:"unlocked_abilities"`
	Inventory []SlotEntry `json:"inventory"`
	Stage     int         `json:"stage"`
}

// Empty returns the documented empty-sentinel snapshot: full vitals, an
// all-empty inventory at the given capacity, the initial stage, and no
// region. Preview of an absent or corrupt slot returns this value.
func Empty(capacity int) Snapshot {
	return Snapshot{
		Health:    DefaultHealth,
		Stamina:   DefaultStamina,
		Inventory: NormalizeInventory(nil, capacity),
	}
}

// IsEmpty reports whether the snapshot is the empty sentinel rather than a
// real save.
func (s Snapshot) IsEmpty() bool {
	return s.RegionID == ""
}

// NormalizeInventory forces the inventory to exactly capacity entries,
// padding with explicit empty slots and truncating overflow. Absent items
// are never omitted so slot position is preserved on restore.
func NormalizeInventory(entries []SlotEntry, capacity int) []SlotEntry {
	if capacity < 0 {
		capacity = 0
	}
	normalized := make([]SlotEntry, capacity)
	for i := 0; i < capacity && i < len(entries); i++ {
		normalized[i] = entries[i]
	}
	return normalized
}
