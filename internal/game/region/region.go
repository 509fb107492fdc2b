// Package region describes loadable world areas and the runtime that loads
// them asynchronously.
package region

import (
	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
)

// ID identifies one loadable region.
type ID string

// Descriptor is the static metadata the core needs about a region.
type Descriptor struct {
	ID    ID
	Label string
	// HasPersistentSpawns marks regions that declare spawn points for the
	// persistent singletons. A load requested while the active region has
	// none must route through the bootstrap region first, because there is
	// nothing to apply state to until the singletons exist.
	HasPersistentSpawns bool
}

// World is the set of known regions plus the special roles the transition
// coordinator needs.
type World struct {
	descriptors map[ID]Descriptor

	// TitleID is the menu region shown before a run starts.
	TitleID ID
	// BootstrapID is the region whose sole job is to materialize the
	// persistent singletons before a deeper region is entered.
	BootstrapID ID
	// EndingID is the region the terminal stage forces a transition to.
	EndingID ID
}

// NewWorld builds a world from descriptors and special-region roles.
func NewWorld(descriptors []Descriptor, titleID, bootstrapID, endingID ID) *World {
	byID := make(map[ID]Descriptor, len(descriptors))
	for _, d := range descriptors {
		if d.Label == "" {
			d.Label = string(d.ID)
		}
		byID[d.ID] = d
	}
	return &World{
		descriptors: byID,
		TitleID:     titleID,
		BootstrapID: bootstrapID,
		EndingID:    endingID,
	}
}

// DefaultWorld returns the shipped region graph. Only the title region has
// no persistent spawn points.
func DefaultWorld() *World {
	return NewWorld([]Descriptor{
		{ID: "Title", Label: "Title Screen"},
		{ID: "Init", Label: "Init", HasPersistentSpawns: true},
		{ID: "Village", Label: "Village", HasPersistentSpawns: true},
		{ID: "Forest", Label: "Forest", HasPersistentSpawns: true},
		{ID: "Cave", Label: "Cave", HasPersistentSpawns: true},
		{ID: "PeuangSad", Label: "Peuang Sad", HasPersistentSpawns: true},
		{ID: "BossArena", Label: "Boss Arena", HasPersistentSpawns: true},
		{ID: "Ending", Label: "Ending", HasPersistentSpawns: true},
	}, "Title", "Init", "Ending")
}

// Descriptor returns the metadata for a region id.
func (w *World) Descriptor(id ID) (Descriptor, error) {
	d, ok := w.descriptors[id]
	if !ok {
		return Descriptor{}, apperrors.WithMetadata(apperrors.CodeRegionUnknown,
			"unknown region", map[string]string{"region": string(id)})
	}
	return d, nil
}

// Label returns the display label for a region id, falling back to the raw
// id for regions missing from the graph (old saves may reference them).
func (w *World) Label(id ID) string {
	if d, ok := w.descriptors[id]; ok {
		return d.Label
	}
	return string(id)
}

// HasPersistentSpawns reports whether a region declares persistent spawn
// points. Unknown regions report false, which routes loads through the
// bootstrap region.
func (w *World) HasPersistentSpawns(id ID) bool {
	d, ok := w.descriptors[id]
	return ok && d.HasPersistentSpawns
}
