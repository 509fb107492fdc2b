package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/storage"
	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func testSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		SavedAt:  "2026-08-30 14:05:00",
		RegionID: "Cave",
		Position: snapshot.Vec3{X: 1, Y: 2, Z: 3},
		Health:   55,
		Stamina:  10.25,
		Inventory: snapshot.NormalizeInventory([]snapshot.SlotEntry{
			{ItemID: "bat_bone", StackCount: 2},
		}, 8),
		Stage: 3,
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	want := testSnapshot()
	if err := s.Save(ctx, 4, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, 4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RegionID != want.RegionID || got.Stage != want.Stage || got.Health != want.Health {
		t.Fatalf("loaded snapshot = %+v, want %+v", got, want)
	}
	if got.Inventory[0].ItemID != "bat_bone" {
		t.Fatalf("slot 0 item = %q, want bat_bone", got.Inventory[0].ItemID)
	}
}

func TestSave_OverwritesExistingSlot(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := testSnapshot()
	if err := s.Save(ctx, 1, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	second := first
	second.RegionID = "Village"
	second.Stage = 1
	if err := s.Save(ctx, 1, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := s.Load(ctx, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RegionID != "Village" || got.Stage != 1 {
		t.Fatalf("slot holds %+v, want the overwritten record", got)
	}
}

func TestLoad_MissingSlot(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Load(ctx, 7)
	if apperrors.CodeOf(err) != apperrors.CodeSlotNotFound {
		t.Fatalf("error = %v, want code %s", err, apperrors.CodeSlotNotFound)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Save(ctx, 2, testSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, 2); err != nil {
		t.Fatalf("second delete must be a no-op, got: %v", err)
	}

	exists, err := s.Exists(ctx, 2)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("deleted slot must not report as existing")
	}
}

func TestValidateSlot_OutOfRange(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Save(ctx, storage.MaxSlots+1, testSnapshot()); apperrors.CodeOf(err) != apperrors.CodeSlotInvalidIndex {
		t.Fatalf("save error = %v, want code %s", err, apperrors.CodeSlotInvalidIndex)
	}
	if _, err := s.Load(ctx, 0); apperrors.CodeOf(err) != apperrors.CodeSlotInvalidIndex {
		t.Fatalf("load error = %v, want code %s", err, apperrors.CodeSlotInvalidIndex)
	}
}

func TestAppendTelemetryEvent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	evt := storage.TelemetryEvent{
		Timestamp:    time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC),
		EventName:    "save_completed",
		Severity:     "INFO",
		Slot:         2,
		RegionID:     "Forest",
		Stage:        1,
		InvocationID: "inv-1",
		Attributes:   map[string]string{"trigger": "save_point"},
	}
	if err := s.AppendTelemetryEvent(ctx, evt); err != nil {
		t.Fatalf("append telemetry: %v", err)
	}

	var count int
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM telemetry_events WHERE event_name = ?", "save_completed")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Fatalf("events = %d, want 1", count)
	}
}
