package snapshot

import "log"

// PlayerTarget accepts the player subsystem's restore side.
type PlayerTarget interface {
	ApplyPlayerFragment(PlayerFragment)
}

// InventoryTarget accepts a positional inventory restore.
type InventoryTarget interface {
	ApplyInventoryFragment([]SlotEntry)
}

// StageTarget accepts the restored progression stage. Applied last: a
// restored terminal stage may trigger a further transition, which must see
// every other subsystem already restored.
type StageTarget interface {
	SetStageIndex(int)
}

// Targets are the subsystems a restore writes to. Any of them may be nil;
// Apply skips the absent ones with a logged diagnostic instead of failing.
type Targets struct {
	Capacity int

	// Resolve maps a stored item id to its current catalog id. Entries
	// that fail to resolve are skipped (slot left empty) rather than
	// aborting the restore. Nil means ids are applied as stored.
	Resolve func(itemID string) (string, error)

	Player    PlayerTarget
	Inventory InventoryTarget
	Stage     StageTarget
}

// Apply writes the snapshot into the available targets. Applying the same
// snapshot twice yields the same observable state.
func Apply(snap Snapshot, tg Targets) {
	if tg.Player != nil {
		tg.Player.ApplyPlayerFragment(PlayerFragment{
			Position:         snap.Position,
			Health:           snap.Health,
			Stamina:          snap.Stamina,
			DashUnlocked:     snap.Abilities.Dash,
			UltimateUnlocked: snap.Abilities.Ultimate,
		})
	} else {
		log.Printf("snapshot: player target absent, skipping vitals restore")
	}

	if tg.Inventory != nil {
		tg.Inventory.ApplyInventoryFragment(resolveEntries(snap.Inventory, tg))
	} else {
		log.Printf("snapshot: inventory target absent, skipping inventory restore")
	}

	if tg.Stage != nil {
		tg.Stage.SetStageIndex(snap.Stage)
	} else {
		log.Printf("snapshot: stage target absent, skipping stage restore")
	}
}

func resolveEntries(entries []SlotEntry, tg Targets) []SlotEntry {
	resolved := NormalizeInventory(entries, tg.Capacity)
	if tg.Resolve == nil {
		return resolved
	}
	for i, entry := range resolved {
		if entry.IsEmpty() {
			continue
		}
		current, err := tg.Resolve(entry.ItemID)
		if err != nil {
			log.Printf("snapshot: item %q has no catalog mapping, leaving slot %d empty: %v",
				entry.ItemID, i, err)
			resolved[i] = SlotEntry{}
			continue
		}
		resolved[i].ItemID = current
	}
	return resolved
}
