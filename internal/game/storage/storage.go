// Package storage defines the persistence interfaces for save slots and
// operational telemetry. Engine implementations live in subpackages.
package storage

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
)

// MaxSlots is the number of save slots exposed by the slot menu.
const MaxSlots = 8

// SlotStore persists one snapshot per save slot.
//
// Load distinguishes an absent slot (CodeSlotNotFound) from an unreadable
// one (CodeSlotCorruptRecord); callers that only need a display value use
// Preview, which maps both to the empty sentinel.
type SlotStore interface {
	Exists(ctx context.Context, slot int) (bool, error)
	Save(ctx context.Context, slot int, snap snapshot.Snapshot) error
	Load(ctx context.Context, slot int) (snapshot.Snapshot, error)
	Delete(ctx context.Context, slot int) error
	Close() error
}

// ValidateSlot rejects slot indexes outside [1, MaxSlots].
func ValidateSlot(slot int) error {
	if slot < 1 || slot > MaxSlots {
		return apperrors.WithMetadata(apperrors.CodeSlotInvalidIndex,
			"slot index out of range", map[string]string{
				"slot":      strconv.Itoa(slot),
				"max_slots": strconv.Itoa(MaxSlots),
			})
	}
	return nil
}

// Preview loads a slot for menu display. Absent, corrupt, or unreadable
// slots become the empty sentinel at the given inventory capacity; the
// failure is logged but never surfaced to the menu.
func Preview(ctx context.Context, store SlotStore, slot, capacity int) snapshot.Snapshot {
	snap, err := store.Load(ctx, slot)
	if err != nil {
		if apperrors.CodeOf(err) != apperrors.CodeSlotNotFound {
			log.Printf("slot %d preview unreadable, showing empty: %v", slot, err)
		}
		return snapshot.Empty(capacity)
	}
	return snap
}

// TelemetryEvent is one operational telemetry record.
type TelemetryEvent struct {
	Timestamp    time.Time
	EventName    string
	Severity     string
	Slot         int
	RegionID     string
	Stage        int
	TraceID      string
	SpanID       string
	InvocationID string
	Attributes   map[string]string
}

// TelemetryStore persists operational telemetry records for incident analysis.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}
