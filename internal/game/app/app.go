// Package app wires the game core: registry, stage machine, objective
// tracker, and transition coordinator over a slot store and region runtime.
package app

import (
	"log"
	"time"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/audio"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/catalog"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/gamestate"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/inventory"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/objective"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/player"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/region"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/registry"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/sched"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/stage"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/storage"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/transition"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/telemetry"
)

// Config holds a session's wired collaborators.
type Config struct {
	Store     storage.SlotStore
	Telemetry storage.TelemetryStore
	Catalog   *catalog.Catalog
	World     *region.World
	Runtime   region.Runtime

	// Rules override the default objective set; nil keeps the defaults.
	Rules []objective.Rule
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// slotStoreInstance adapts the slot store into a registry instance so the
// save store itself is arbitrated like every other persistent subsystem.
type slotStoreInstance struct {
	storage.SlotStore
}

func (s slotStoreInstance) Destroy() {
	if err := s.Close(); err != nil {
		log.Printf("app: close slot store: %v", err)
	}
}

// Session is one wired game-core runtime.
type Session struct {
	registry *registry.Registry
	sched    *sched.Scheduler
	machine  *stage.Machine
	coord    *transition.Coordinator
	catalog  *catalog.Catalog
	world    *region.World
	rules    []objective.Rule
}

// NewSession wires a session. The slot store registers immediately; the
// gameplay singletons register when their first spawn-capable region loads.
func NewSession(cfg Config) (*Session, error) {
	if cfg.World == nil {
		cfg.World = region.DefaultWorld()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.Rules == nil {
		cfg.Rules = objective.DefaultRules()
	}

	s := &Session{
		registry: registry.New(),
		sched:    sched.New(),
		machine:  stage.NewMachine(),
		catalog:  cfg.Catalog,
		world:    cfg.World,
		rules:    cfg.Rules,
	}

	// Compile the rule set up front so a content defect fails the session
	// instead of the first spawn.
	if _, err := objective.NewTracker(s.machine, nil, nil, cfg.Rules); err != nil {
		return nil, err
	}

	s.coord = transition.New(transition.Config{
		Registry: s.registry,
		Store:    cfg.Store,
		World:    cfg.World,
		Runtime:  cfg.Runtime,
		Sched:    s.sched,
		Machine:  s.machine,
		Catalog:  cfg.Catalog,
		Emitter:  telemetry.NewEmitter(cfg.Telemetry),
		Now:      cfg.Now,
	})
	s.coord.InstallEndingHook()

	s.registry.RegisterOrReject(registry.KindSaveStore, slotStoreInstance{cfg.Store})
	return s, nil
}

// Coordinator returns the session's transition coordinator, the exposed
// save/load/delete surface.
func (s *Session) Coordinator() *transition.Coordinator {
	return s.coord
}

// Stage returns the progression machine.
func (s *Session) Stage() *stage.Machine {
	return s.machine
}

// Registry returns the singleton registry.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

// Tick advances the simulation one quantum: deferred work first, then the
// objective check so a completed objective reacts to this tick's pickups.
func (s *Session) Tick() {
	s.sched.Tick()
	if inst, ok := s.registry.Get(registry.KindQuestTracker); ok {
		if tracker, ok := inst.(*objective.Tracker); ok {
			tracker.Evaluate()
		}
	}
}

// SpawnRegionSubsystems runs a region's spawn points: every persistent
// kind announces a candidate and the registry keeps the first one. Wire it
// as the runtime's post-load hook for spawn-capable regions.
func (s *Session) SpawnRegionSubsystems(id region.ID) {
	if !s.world.HasPersistentSpawns(id) {
		return
	}

	inv := inventory.New(s.catalog, inventory.Capacity)
	avatar := player.New(inv)
	if res := s.registry.RegisterOrReject(registry.KindPlayer, avatar); !res.Accepted {
		avatar.Destroy()
	}

	tracker, err := objective.NewTracker(s.machine, s.heldInventoryCounter(inv), s.coord, s.rules)
	if err != nil {
		// Rules were validated at session start; a failure here means a
		// content hot-swap broke them. Keep the session alive.
		log.Printf("app: quest tracker spawn failed: %v", err)
	} else if res := s.registry.RegisterOrReject(registry.KindQuestTracker, tracker); !res.Accepted {
		tracker.Destroy()
	}

	state := gamestate.New()
	if res := s.registry.RegisterOrReject(registry.KindGameState, state); !res.Accepted {
		state.Destroy()
	}

	root := audio.New()
	if res := s.registry.RegisterOrReject(registry.KindAudioRoot, root); !res.Accepted {
		root.Destroy()
	}
}

// heldInventoryCounter prefers the held player's inventory over the
// candidate's, so a rejected duplicate avatar never becomes the quest
// tracker's count source.
func (s *Session) heldInventoryCounter(fallback *inventory.Inventory) objective.Counter {
	if inst, ok := s.registry.Get(registry.KindPlayer); ok {
		if avatar, ok := inst.(*player.Avatar); ok {
			return avatar.Inventory()
		}
	}
	return fallback
}

// NewGame tears the run down for a fresh start from the title region:
// session bookkeeping resets, the gameplay singletons unregister and are
// destroyed, and progression returns to the initial stage. The save store
// stays registered; saves belong to the player, not the run.
func (s *Session) NewGame() {
	if inst, ok := s.registry.Get(registry.KindGameState); ok {
		if state, ok := inst.(*gamestate.Tracker); ok {
			state.ResetForNewGame()
		}
	}

	for _, kind := range []registry.Kind{
		registry.KindPlayer, registry.KindQuestTracker,
		registry.KindGameState, registry.KindAudioRoot,
	} {
		if inst, ok := s.registry.Get(kind); ok {
			s.registry.Unregister(kind)
			inst.Destroy()
		}
	}

	s.machine.Reset()
	log.Printf("app: new game, returning to title region %s", s.world.TitleID)
}

// DefaultCatalog returns the built-in item set used when no data script is
// configured.
func DefaultCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Definition{
		{ID: "sword_tier1", Name: "Rusty Sword", MaxStack: 1},
		{ID: "sword_tier2", Name: "Forged Sword", MaxStack: 1},
		{ID: "bat_bone", Name: "Bat Bone", MaxStack: 5},
		{ID: "slime_residue", Name: "Slime Residue", MaxStack: 5},
		{ID: "cave_crystal", Name: "Cave Crystal", MaxStack: 5},
		{ID: "healing_herb", Name: "Healing Herb", MaxStack: 3},
	}, map[string]string{
		"weapon_tier1": "sword_tier1",
		"weapon_tier2": "sword_tier2",
	})
}
