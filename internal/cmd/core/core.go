// Package core parses core command flags and runs the save-slot tool:
// listing, inspecting, and deleting the durable save records.
package core

import (
	"context"
	"flag"
	"fmt"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/app"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/catalog"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/inventory"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/region"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/stage"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/storage"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/storage/file"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/storage/sqlite"
	entrypoint "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/cmd"
)

// Config holds core command configuration.
type Config struct {
	SaveDir      string `env:"PUANG_SAVE_DIR" envDefault:"saves"`
	Backend      string `env:"PUANG_SAVE_BACKEND" envDefault:"file"`
	DatabasePath string `env:"PUANG_SAVE_DB" envDefault:"saves/puang.db"`
	CatalogPath  string `env:"PUANG_ITEM_CATALOG"`

	// Slot selects one slot to inspect in detail; 0 lists all slots.
	Slot int
	// Delete removes the selected slot instead of inspecting it.
	Delete bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "Directory holding the save documents (file backend)")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Save backend: file or sqlite")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "Database path (sqlite backend)")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Item catalog Lua script; empty uses the built-in set")
	fs.IntVar(&cfg.Slot, "slot", 0, "Slot to inspect; 0 lists all slots")
	fs.BoolVar(&cfg.Delete, "delete", false, "Delete the selected slot")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the save-slot tool.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCore, func(ctx context.Context) error {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		switch {
		case cfg.Delete:
			return deleteSlot(ctx, store, cfg.Slot)
		case cfg.Slot > 0:
			return inspectSlot(ctx, store, cat, cfg.Slot)
		default:
			return listSlots(ctx, store)
		}
	})
}

func openStore(cfg Config) (storage.SlotStore, error) {
	switch cfg.Backend {
	case "file":
		return file.New(cfg.SaveDir)
	case "sqlite":
		return sqlite.Open(cfg.DatabasePath)
	default:
		return nil, fmt.Errorf("unknown save backend %q (want file or sqlite)", cfg.Backend)
	}
}

func loadCatalog(cfg Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return app.DefaultCatalog(), nil
	}
	return catalog.LoadLua(cfg.CatalogPath)
}

func listSlots(ctx context.Context, store storage.SlotStore) error {
	world := region.DefaultWorld()
	for slot := 1; slot <= storage.MaxSlots; slot++ {
		snap := storage.Preview(ctx, store, slot, inventory.Capacity)
		if snap.IsEmpty() {
			fmt.Printf("slot %d: empty\n", slot)
			continue
		}
		s, _ := stage.FromIndex(snap.Stage)
		fmt.Printf("slot %d: %s, saved %s, stage %s\n",
			slot, world.Label(region.ID(snap.RegionID)), snap.SavedAt, s)
	}
	return nil
}

func inspectSlot(ctx context.Context, store storage.SlotStore, cat *catalog.Catalog, slot int) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	snap := storage.Preview(ctx, store, slot, inventory.Capacity)
	if snap.IsEmpty() {
		fmt.Printf("slot %d: empty\n", slot)
		return nil
	}

	world := region.DefaultWorld()
	s, _ := stage.FromIndex(snap.Stage)
	fmt.Printf("slot %d: %s, saved %s\n", slot, world.Label(region.ID(snap.RegionID)), snap.SavedAt)
	fmt.Printf("  position (%.2f, %.2f, %.2f), health %d, stamina %.1f\n",
		snap.Position.X, snap.Position.Y, snap.Position.Z, snap.Health, snap.Stamina)
	fmt.Printf("  stage %s, dash %v, ultimate %v\n", s, snap.Abilities.Dash, snap.Abilities.Ultimate)
	for i, entry := range snap.Inventory {
		if entry.IsEmpty() {
			continue
		}
		name := entry.ItemID
		if def, err := cat.Resolve(entry.ItemID); err == nil {
			name = def.Name
		}
		fmt.Printf("  item slot %d: %s x%d\n", i, name, entry.StackCount)
	}
	return nil
}

func deleteSlot(ctx context.Context, store storage.SlotStore, slot int) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	if err := store.Delete(ctx, slot); err != nil {
		return err
	}
	fmt.Printf("slot %d deleted\n", slot)
	return nil
}
