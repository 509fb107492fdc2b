// Package sqlite implements a SlotStore and TelemetryStore over one SQLite
// database. Schema comes from embedded migrations applied at open time.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/storage"
	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/storage/sqlitemigrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is a SQLite-backed slot and telemetry store.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a SQLite store at the provided path and
// applies embedded migrations before handing the store to higher layers.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrationsFS, "migrations"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
//
// Close is intentionally nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Exists reports whether the slot holds a record.
func (s *Store) Exists(ctx context.Context, slot int) (bool, error) {
	if err := storage.ValidateSlot(slot); err != nil {
		return false, err
	}
	var found int
	row := s.sqlDB.QueryRowContext(ctx, "SELECT 1 FROM save_slots WHERE slot = ?", slot)
	if err := row.Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query slot %d: %w", slot, err)
	}
	return true, nil
}

// Save upserts the snapshot into the slot row. The denormalized saved_at,
// region_id, and stage columns exist for slot-menu queries and housekeeping;
// the payload column remains the source of truth.
func (s *Store) Save(ctx context.Context, slot int, snap snapshot.Snapshot) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeSlotWriteFailed, "encode snapshot", err)
	}

	const upsertSQL = `
INSERT INTO save_slots (slot, payload, saved_at, region_id, stage)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
    payload = excluded.payload,
    saved_at = excluded.saved_at,
    region_id = excluded.region_id,
    stage = excluded.stage
`
	if _, err := s.sqlDB.ExecContext(ctx, upsertSQL,
		slot, string(payload), snap.SavedAt, snap.RegionID, snap.Stage); err != nil {
		return apperrors.Wrap(apperrors.CodeSlotWriteFailed, "write slot row", err)
	}
	return nil
}

// Load reads and decodes the slot row.
func (s *Store) Load(ctx context.Context, slot int) (snapshot.Snapshot, error) {
	if err := storage.ValidateSlot(slot); err != nil {
		return snapshot.Snapshot{}, err
	}

	var payload string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM save_slots WHERE slot = ?", slot)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return snapshot.Snapshot{}, apperrors.WithMetadata(apperrors.CodeSlotNotFound,
				"slot has no record", map[string]string{"slot": strconv.Itoa(slot)})
		}
		return snapshot.Snapshot{}, fmt.Errorf("query slot %d: %w", slot, err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return snapshot.Snapshot{}, apperrors.Wrap(apperrors.CodeSlotCorruptRecord, "decode slot payload", err)
	}
	return snap, nil
}

// Delete removes the slot row. Deleting an absent slot is a no-op.
func (s *Store) Delete(ctx context.Context, slot int) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM save_slots WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("delete slot %d: %w", slot, err)
	}
	return nil
}

// AppendTelemetryEvent persists one telemetry record.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	attrs := []byte("{}")
	if len(evt.Attributes) > 0 {
		encoded, err := json.Marshal(evt.Attributes)
		if err != nil {
			return fmt.Errorf("encode telemetry attributes: %w", err)
		}
		attrs = encoded
	}

	const insertSQL = `
INSERT INTO telemetry_events
    (occurred_at, event_name, severity, slot, region_id, stage, trace_id, span_id, invocation_id, attributes_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	if _, err := s.sqlDB.ExecContext(ctx, insertSQL,
		evt.Timestamp.UTC().UnixMilli(),
		evt.EventName,
		evt.Severity,
		evt.Slot,
		evt.RegionID,
		evt.Stage,
		evt.TraceID,
		evt.SpanID,
		evt.InvocationID,
		string(attrs),
	); err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}
