// Package inventory holds the player's positional item slots.
//
// Capacity is fixed at hotbar plus pack slots; empty slots are explicit so
// an item's position survives a save/restore round trip.
package inventory

import (
	"log"
	"sync"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/catalog"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
)

// Shipped slot layout.
const (
	HotbarSlots = 4
	PackSlots   = 4
	Capacity    = HotbarSlots + PackSlots
)

// Inventory is a fixed-capacity, positional item container.
type Inventory struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	slots    []snapshot.SlotEntry
	capacity int
}

// New creates an empty inventory. capacity < 1 falls back to the default
// hotbar plus pack layout.
func New(c *catalog.Catalog, capacity int) *Inventory {
	if capacity < 1 {
		capacity = Capacity
	}
	return &Inventory{
		catalog:  c,
		slots:    snapshot.NormalizeInventory(nil, capacity),
		capacity: capacity,
	}
}

// Capacity returns the fixed slot count.
func (inv *Inventory) Capacity() int {
	return inv.capacity
}

// Add places count of an item into the first slot that can take it,
// stacking onto an existing slot of the same item up to the catalog's max
// stack. Returns false when the item cannot be resolved or nothing fits.
func (inv *Inventory) Add(itemID string, count int) bool {
	if count < 1 {
		return false
	}
	def, err := inv.catalog.Resolve(itemID)
	if err != nil {
		log.Printf("inventory: dropping pickup %q: %v", itemID, err)
		return false
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	remaining := count
	for i := range inv.slots {
		if remaining == 0 {
			break
		}
		slot := &inv.slots[i]
		switch {
		case slot.ItemID == def.ID && slot.StackCount < def.MaxStack:
			take := min(remaining, def.MaxStack-slot.StackCount)
			slot.StackCount += take
			remaining -= take
		case slot.IsEmpty():
			take := min(remaining, def.MaxStack)
			*slot = snapshot.SlotEntry{ItemID: def.ID, StackCount: take}
			remaining -= take
		}
	}
	return remaining < count
}

// Count returns the total stack count held for an item, resolving legacy
// ids through the catalog first.
func (inv *Inventory) Count(itemID string) int {
	id := itemID
	if def, err := inv.catalog.Resolve(itemID); err == nil {
		id = def.ID
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	total := 0
	for _, slot := range inv.slots {
		if slot.ItemID == id {
			total += slot.StackCount
		}
	}
	return total
}

// Remove takes count of an item out of the inventory, emptying slots that
// reach zero. Returns false when the inventory holds fewer than count.
func (inv *Inventory) Remove(itemID string, count int) bool {
	if count < 1 {
		return false
	}
	id := itemID
	if def, err := inv.catalog.Resolve(itemID); err == nil {
		id = def.ID
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	held := 0
	for _, slot := range inv.slots {
		if slot.ItemID == id {
			held += slot.StackCount
		}
	}
	if held < count {
		return false
	}

	remaining := count
	for i := range inv.slots {
		if remaining == 0 {
			break
		}
		slot := &inv.slots[i]
		if slot.ItemID != id {
			continue
		}
		take := min(remaining, slot.StackCount)
		slot.StackCount -= take
		remaining -= take
		if slot.StackCount == 0 {
			*slot = snapshot.SlotEntry{}
		}
	}
	return true
}

// CaptureInventoryFragment returns a positional copy of the slots.
func (inv *Inventory) CaptureInventoryFragment() []snapshot.SlotEntry {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return snapshot.NormalizeInventory(inv.slots, inv.capacity)
}

// ApplyInventoryFragment replaces the slots with the restored entries.
func (inv *Inventory) ApplyInventoryFragment(entries []snapshot.SlotEntry) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.slots = snapshot.NormalizeInventory(entries, inv.capacity)
}

// Clear empties every slot.
func (inv *Inventory) Clear() {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.slots = snapshot.NormalizeInventory(nil, inv.capacity)
}
