package snapshot

import (
	"fmt"
	"reflect"
	"testing"
)

type applyRecorder struct {
	player    PlayerFragment
	inventory []SlotEntry
	stage     int
}

func (r *applyRecorder) ApplyPlayerFragment(f PlayerFragment) { r.player = f }
func (r *applyRecorder) ApplyInventoryFragment(e []SlotEntry) { r.inventory = e }
func (r *applyRecorder) SetStageIndex(idx int)                { r.stage = idx }

func restoreSnapshot() Snapshot {
	return Snapshot{
		SavedAt:  "2026-08-30 14:05:00",
		RegionID: "Forest",
		Position: Vec3{X: 1, Y: 2, Z: 0},
		Health:   80,
		Stamina:  40,
		Abilities: Abilities{
			Dash: true,
		},
		Inventory: NormalizeInventory([]SlotEntry{
			{ItemID: "sword_tier1", StackCount: 1},
			{},
			{ItemID: "bat_bone", StackCount: 2},
		}, 8),
		Stage: 1,
	}
}

func TestApply_WritesAllTargets(t *testing.T) {
	r := &applyRecorder{}
	Apply(restoreSnapshot(), Targets{
		Capacity:  8,
		Player:    r,
		Inventory: r,
		Stage:     r,
	})

	if r.player.Health != 80 || r.player.Stamina != 40 {
		t.Fatalf("player fragment = %+v, want health 80 stamina 40", r.player)
	}
	if !r.player.DashUnlocked || r.player.UltimateUnlocked {
		t.Fatalf("abilities = %+v, want dash only", r.player)
	}
	if len(r.inventory) != 8 || r.inventory[2].StackCount != 2 {
		t.Fatalf("inventory = %+v, want slot 2 stack 2 of 8 slots", r.inventory)
	}
	if r.stage != 1 {
		t.Fatalf("stage = %d, want 1", r.stage)
	}
}

func TestApply_Idempotent(t *testing.T) {
	snap := restoreSnapshot()
	once := &applyRecorder{}
	twice := &applyRecorder{}

	Apply(snap, Targets{Capacity: 8, Player: once, Inventory: once, Stage: once})
	Apply(snap, Targets{Capacity: 8, Player: twice, Inventory: twice, Stage: twice})
	Apply(snap, Targets{Capacity: 8, Player: twice, Inventory: twice, Stage: twice})

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("double apply state = %+v, want %+v", twice, once)
	}
}

func TestApply_UnresolvedItemLeavesSlotEmpty(t *testing.T) {
	r := &applyRecorder{}
	Apply(restoreSnapshot(), Targets{
		Capacity:  8,
		Inventory: r,
		Resolve: func(id string) (string, error) {
			if id == "bat_bone" {
				return "", fmt.Errorf("no mapping")
			}
			return id, nil
		},
	})

	if r.inventory[0].ItemID != "sword_tier1" {
		t.Fatalf("slot 0 = %+v, want sword_tier1", r.inventory[0])
	}
	if !r.inventory[2].IsEmpty() {
		t.Fatalf("slot 2 = %+v, want empty after failed resolution", r.inventory[2])
	}
}

func TestApply_ResolveRewritesLegacyID(t *testing.T) {
	r := &applyRecorder{}
	snap := restoreSnapshot()
	snap.Inventory[0].ItemID = "weapon_tier1"

	Apply(snap, Targets{
		Capacity:  8,
		Inventory: r,
		Resolve: func(id string) (string, error) {
			if id == "weapon_tier1" {
				return "sword_tier1", nil
			}
			return id, nil
		},
	})

	if r.inventory[0].ItemID != "sword_tier1" {
		t.Fatalf("slot 0 id = %q, want sword_tier1", r.inventory[0].ItemID)
	}
}

func TestApply_NilTargetsAreSkipped(t *testing.T) {
	// Must not panic with every target absent.
	Apply(restoreSnapshot(), Targets{Capacity: 8})
}
