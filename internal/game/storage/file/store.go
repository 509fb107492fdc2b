// Package file implements a SlotStore backed by one JSON document per slot.
//
// Documents are written indented so players and support staff can inspect
// or hand-edit a save. Writes go through a temp file and rename so a crash
// mid-save never leaves a half-written slot behind.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/storage"
	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store persists snapshots as save_slot_<n>.json files under one directory.
type Store struct {
	dir string
}

// New creates the save directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("save directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SlotPath returns the document path for a slot.
func (s *Store) SlotPath(slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("save_slot_%d.json", slot))
}

// Exists reports whether the slot has a document on disk.
func (s *Store) Exists(ctx context.Context, slot int) (bool, error) {
	if err := storage.ValidateSlot(slot); err != nil {
		return false, err
	}
	if _, err := os.Stat(s.SlotPath(slot)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat slot %d: %w", slot, err)
	}
	return true, nil
}

// Save writes the snapshot to the slot document atomically.
func (s *Store) Save(ctx context.Context, slot int, snap snapshot.Snapshot) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.CodeSlotWriteFailed, "encode snapshot", err)
	}

	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf(".save_slot_%d_*.tmp", slot))
	if err != nil {
		return apperrors.Wrap(apperrors.CodeSlotWriteFailed, "create temp save file", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return apperrors.Wrap(apperrors.CodeSlotWriteFailed, "write temp save file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return apperrors.Wrap(apperrors.CodeSlotWriteFailed, "close temp save file", err)
	}
	if err := os.Rename(tmpPath, s.SlotPath(slot)); err != nil {
		_ = os.Remove(tmpPath)
		return apperrors.Wrap(apperrors.CodeSlotWriteFailed, "replace slot document", err)
	}
	return nil
}

// Load reads and decodes the slot document.
func (s *Store) Load(ctx context.Context, slot int) (snapshot.Snapshot, error) {
	if err := storage.ValidateSlot(slot); err != nil {
		return snapshot.Snapshot{}, err
	}

	payload, err := os.ReadFile(s.SlotPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot.Snapshot{}, apperrors.WithMetadata(apperrors.CodeSlotNotFound,
				"slot has no save document", map[string]string{"slot": strconv.Itoa(slot)})
		}
		return snapshot.Snapshot{}, apperrors.Wrap(apperrors.CodeSlotCorruptRecord, "read slot document", err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return snapshot.Snapshot{}, apperrors.Wrap(apperrors.CodeSlotCorruptRecord, "decode slot document", err)
	}
	return snap, nil
}

// Delete removes the slot document. Deleting an absent slot is a no-op.
func (s *Store) Delete(ctx context.Context, slot int) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	if err := os.Remove(s.SlotPath(slot)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete slot %d: %w", slot, err)
	}
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}
