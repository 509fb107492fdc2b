package inventory

import (
	"testing"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/catalog"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Definition{
		{ID: "sword_tier1", Name: "Rusty Sword", MaxStack: 1},
		{ID: "bat_bone", Name: "Bat Bone", MaxStack: 5},
		{ID: "slime_residue", Name: "Slime Residue", MaxStack: 5},
	}, map[string]string{
		"weapon_tier1": "sword_tier1",
	})
}

func TestAdd_StacksBeforeOpeningNewSlot(t *testing.T) {
	inv := New(testCatalog(), Capacity)

	if !inv.Add("bat_bone", 3) {
		t.Fatal("first pickup must be accepted")
	}
	if !inv.Add("bat_bone", 4) {
		t.Fatal("second pickup must be accepted")
	}

	slots := inv.CaptureInventoryFragment()
	if slots[0].StackCount != 5 {
		t.Fatalf("slot 0 stack = %d, want max stack 5", slots[0].StackCount)
	}
	if slots[1].ItemID != "bat_bone" || slots[1].StackCount != 2 {
		t.Fatalf("slot 1 = %+v, want overflow stack of 2", slots[1])
	}
	if inv.Count("bat_bone") != 7 {
		t.Fatalf("count = %d, want 7", inv.Count("bat_bone"))
	}
}

func TestAdd_ResolvesLegacyID(t *testing.T) {
	inv := New(testCatalog(), Capacity)

	if !inv.Add("weapon_tier1", 1) {
		t.Fatal("aliased pickup must be accepted")
	}
	slots := inv.CaptureInventoryFragment()
	if slots[0].ItemID != "sword_tier1" {
		t.Fatalf("slot 0 id = %q, want current id sword_tier1", slots[0].ItemID)
	}
	if inv.Count("weapon_tier1") != 1 {
		t.Fatal("count through the legacy id must see the current stack")
	}
}

func TestAdd_UnknownItemDropped(t *testing.T) {
	inv := New(testCatalog(), Capacity)
	if inv.Add("no_such_item", 1) {
		t.Fatal("unknown item must be dropped")
	}
}

func TestRemove(t *testing.T) {
	inv := New(testCatalog(), Capacity)
	inv.Add("slime_residue", 4)

	if !inv.Remove("slime_residue", 3) {
		t.Fatal("remove within held count must succeed")
	}
	if inv.Count("slime_residue") != 1 {
		t.Fatalf("count = %d, want 1", inv.Count("slime_residue"))
	}
	if inv.Remove("slime_residue", 2) {
		t.Fatal("remove beyond held count must fail")
	}
}

func TestCaptureApply_PreservesSlotPositions(t *testing.T) {
	inv := New(testCatalog(), Capacity)
	inv.ApplyInventoryFragment([]snapshot.SlotEntry{
		{ItemID: "sword_tier1", StackCount: 1},
		{},
		{ItemID: "bat_bone", StackCount: 2},
	})

	slots := inv.CaptureInventoryFragment()
	if len(slots) != Capacity {
		t.Fatalf("capacity = %d, want %d", len(slots), Capacity)
	}
	if !slots[1].IsEmpty() {
		t.Fatalf("slot 1 = %+v, want empty", slots[1])
	}
	if slots[2].ItemID != "bat_bone" {
		t.Fatalf("slot 2 = %+v, want bat_bone", slots[2])
	}
}

func TestClear(t *testing.T) {
	inv := New(testCatalog(), Capacity)
	inv.Add("bat_bone", 2)
	inv.Clear()
	if inv.Count("bat_bone") != 0 {
		t.Fatal("clear must empty every slot")
	}
}
