// Package transition orchestrates "go to region X, then apply snapshot Y".
//
// It is the only component that spans asynchronous region loads: it decides
// whether a load needs a region switch, whether the switch must route
// through the bootstrap region first, and when the restored state may be
// applied relative to region readiness. All of its continuations run on the
// simulation tick queue, never on foreign goroutines.
package transition

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/catalog"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/inventory"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/region"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/registry"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/sched"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/stage"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/storage"
	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/telemetry"
)

const instrumentationName = "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/transition"

// Summary is the slot-menu display line for one save slot.
type Summary struct {
	RegionLabel string
	Timestamp   string
}

// Config wires a coordinator's collaborators.
type Config struct {
	Registry *registry.Registry
	Store    storage.SlotStore
	World    *region.World
	Runtime  region.Runtime
	Sched    *sched.Scheduler
	Machine  *stage.Machine
	Catalog  *catalog.Catalog
	Emitter  *telemetry.Emitter

	// Capacity is the inventory slot count; < 1 uses the default layout.
	Capacity int
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Coordinator resolves save, load, and forced region transitions.
type Coordinator struct {
	reg     *registry.Registry
	store   storage.SlotStore
	world   *region.World
	runtime region.Runtime
	sched   *sched.Scheduler
	machine *stage.Machine
	catalog *catalog.Catalog
	emitter *telemetry.Emitter
	tracer  trace.Tracer

	capacity int
	now      func() time.Time

	mu           sync.Mutex
	loadInFlight bool
}

// New creates a coordinator from its wired collaborators.
func New(cfg Config) *Coordinator {
	if cfg.Capacity < 1 {
		cfg.Capacity = inventory.Capacity
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Coordinator{
		reg:      cfg.Registry,
		store:    cfg.Store,
		world:    cfg.World,
		runtime:  cfg.Runtime,
		sched:    cfg.Sched,
		machine:  cfg.Machine,
		catalog:  cfg.Catalog,
		emitter:  cfg.Emitter,
		tracer:   otel.Tracer(instrumentationName),
		capacity: cfg.Capacity,
		now:      cfg.Now,
	}
}

// InstallEndingHook arms the terminal-stage trigger: entering the final
// stage forces one transition to the ending region on the next tick.
func (c *Coordinator) InstallEndingHook() {
	c.machine.SetTerminalHook(func() {
		c.sched.Defer(func() {
			c.ForceTransition(c.world.EndingID)
		})
	})
}

// Save captures a snapshot from the held singletons and commits it to the
// slot. The caller is told "saved" only after the durable write finished.
func (c *Coordinator) Save(ctx context.Context, slot int) error {
	ctx, span := c.tracer.Start(ctx, "coordinator.save",
		trace.WithAttributes(attribute.Int("save.slot", slot)))
	defer span.End()

	if err := storage.ValidateSlot(slot); err != nil {
		log.Printf("transition: save rejected: %v", err)
		return err
	}

	snap := snapshot.Capture(c.captureSources())
	if err := c.store.Save(ctx, slot, snap); err != nil {
		span.RecordError(err)
		c.emit(ctx, "save_failed", telemetry.SeverityError, slot, snap, nil)
		return err
	}

	log.Printf("transition: saved slot %d in region %s", slot, snap.RegionID)
	c.emit(ctx, "save_completed", telemetry.SeverityInfo, slot, snap, nil)
	return nil
}

// Exists reports whether the slot holds a durable record. Out-of-range
// slots report false.
func (c *Coordinator) Exists(ctx context.Context, slot int) bool {
	if err := storage.ValidateSlot(slot); err != nil {
		log.Printf("transition: exists rejected: %v", err)
		return false
	}
	exists, err := c.store.Exists(ctx, slot)
	if err != nil {
		log.Printf("transition: exists check for slot %d: %v", slot, err)
		return false
	}
	return exists
}

// Preview returns the slot's snapshot for display. Absent and corrupt
// slots become the empty sentinel.
func (c *Coordinator) Preview(ctx context.Context, slot int) snapshot.Snapshot {
	if err := storage.ValidateSlot(slot); err != nil {
		log.Printf("transition: preview rejected: %v", err)
		return snapshot.Empty(c.capacity)
	}
	return storage.Preview(ctx, c.store, slot, c.capacity)
}

// SlotSummary returns the slot-menu line for a slot. ok is false for an
// empty (or unreadable) slot.
func (c *Coordinator) SlotSummary(ctx context.Context, slot int) (Summary, bool) {
	snap := c.Preview(ctx, slot)
	if snap.IsEmpty() {
		return Summary{}, false
	}
	return Summary{
		RegionLabel: c.world.Label(region.ID(snap.RegionID)),
		Timestamp:   snap.SavedAt,
	}, true
}

// Delete removes the slot's durable record. Deleting an empty slot is a
// no-op.
func (c *Coordinator) Delete(ctx context.Context, slot int) error {
	if err := storage.ValidateSlot(slot); err != nil {
		log.Printf("transition: delete rejected: %v", err)
		return err
	}
	if err := c.store.Delete(ctx, slot); err != nil {
		return err
	}
	c.emit(ctx, "slot_deleted", telemetry.SeverityInfo, slot, snapshot.Snapshot{}, nil)
	return nil
}

// Load restores the slot's snapshot, switching regions first when needed.
//
// The returned operation completes once the restored state is applied, or
// with an error when the region switch failed. Only a concurrent-load
// rejection is returned synchronously; an empty or unreadable slot is a
// logged no-op whose operation completes immediately without error.
func (c *Coordinator) Load(ctx context.Context, slot int) (*Operation, error) {
	ctx, span := c.tracer.Start(ctx, "coordinator.load",
		trace.WithAttributes(attribute.Int("save.slot", slot)))

	if err := storage.ValidateSlot(slot); err != nil {
		log.Printf("transition: load rejected: %v", err)
		span.End()
		return completedOperation(nil), nil
	}

	c.mu.Lock()
	if c.loadInFlight {
		c.mu.Unlock()
		err := apperrors.New(apperrors.CodeConcurrentLoadRejected,
			"a load is already in flight, try again")
		log.Printf("transition: load of slot %d rejected: %v", slot, err)
		c.emit(ctx, "load_rejected", telemetry.SeverityWarn, slot, snapshot.Snapshot{}, nil)
		span.End()
		return nil, err
	}
	c.loadInFlight = true
	c.mu.Unlock()

	snap, err := c.store.Load(ctx, slot)
	if err != nil || snap.IsEmpty() {
		c.clearInFlight()
		if err != nil {
			log.Printf("transition: slot %d unreadable, treating as empty: %v", slot, err)
		} else {
			log.Printf("transition: slot %d is empty, nothing to load", slot)
		}
		span.End()
		return completedOperation(nil), nil
	}

	op := newOperation()
	target := region.ID(snap.RegionID)
	current := c.runtime.CurrentRegionID()

	finish := func(err error) {
		c.clearInFlight()
		if err != nil {
			span.RecordError(err)
			c.emit(ctx, "load_failed", telemetry.SeverityError, slot, snap, nil)
		} else {
			c.emit(ctx, "load_completed", telemetry.SeverityInfo, slot, snap, nil)
		}
		span.End()
		op.complete(err)
	}

	// The one-tick debounce: dependent subsystems run their own startup
	// on the tick a region becomes active, and state application must
	// land after that.
	applyDeferred := func() {
		c.sched.Defer(func() {
			snapshot.Apply(snap, c.applyTargets())
			log.Printf("transition: slot %d applied in region %s", slot, snap.RegionID)
			finish(nil)
		})
	}

	loadTarget := func() {
		readiness := c.runtime.LoadRegion(ctx, target)
		c.awaitReadiness(readiness, func(err error) {
			if err != nil {
				finish(apperrors.Wrap(apperrors.CodeRegionLoadFailure,
					"target region failed to become ready", err))
				return
			}
			applyDeferred()
		})
	}

	switch {
	case target == current:
		// Same region: no region load, just the debounce.
		applyDeferred()
	case !c.world.HasPersistentSpawns(current):
		// The active region spawns no singletons, so there is nothing to
		// apply state to yet. Route through the bootstrap region first.
		log.Printf("transition: load of slot %d routing through bootstrap region %s",
			slot, c.world.BootstrapID)
		readiness := c.runtime.LoadRegion(ctx, c.world.BootstrapID)
		c.awaitReadiness(readiness, func(err error) {
			if err != nil {
				finish(apperrors.Wrap(apperrors.CodeRegionLoadFailure,
					"bootstrap region failed to become ready", err))
				return
			}
			loadTarget()
		})
	default:
		loadTarget()
	}
	return op, nil
}

// ForceTransition loads a region outside the save/load flow: objective
// completions and the terminal stage use it. Failures are logged, not
// surfaced; the player stays where they are.
func (c *Coordinator) ForceTransition(id region.ID) {
	ctx := context.Background()
	log.Printf("transition: forced transition to %s", id)
	readiness := c.runtime.LoadRegion(ctx, id)
	c.awaitReadiness(readiness, func(err error) {
		if err != nil {
			log.Printf("transition: forced transition to %s failed: %v", id, err)
			return
		}
		c.emit(ctx, "forced_transition", telemetry.SeverityInfo, 0, snapshot.Snapshot{},
			map[string]string{"region": string(id)})
	})
}

// CurrentStage returns the progression stage.
func (c *Coordinator) CurrentStage() stage.Stage {
	return c.machine.Current()
}

// AdvanceStage moves progression forward one stage.
func (c *Coordinator) AdvanceStage() {
	c.machine.Advance()
}

// SetStage assigns the progression stage directly.
func (c *Coordinator) SetStage(s stage.Stage) {
	c.machine.Set(s)
}

// LoadInFlight reports whether a load is currently pending.
func (c *Coordinator) LoadInFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadInFlight
}

func (c *Coordinator) clearInFlight() {
	c.mu.Lock()
	c.loadInFlight = false
	c.mu.Unlock()
}

// awaitReadiness polls a readiness signal from the tick queue, re-arming
// itself every tick until the signal resolves. The continuation therefore
// always runs on the simulation thread.
func (c *Coordinator) awaitReadiness(r region.Readiness, then func(error)) {
	var poll func()
	poll = func() {
		select {
		case <-r.Done():
			then(r.Err())
		default:
			c.sched.Defer(poll)
		}
	}
	c.sched.Defer(poll)
}

// captureSources assembles the save-side view of the held singletons.
// Absent singletons stay nil; Capture substitutes their defaults.
func (c *Coordinator) captureSources() snapshot.Sources {
	src := snapshot.Sources{
		RegionID: string(c.runtime.CurrentRegionID()),
		Capacity: c.capacity,
		Now:      c.now,
	}
	if inst, ok := c.reg.Get(registry.KindPlayer); ok {
		if p, ok := inst.(snapshot.PlayerSource); ok {
			src.Player = p
		}
		if i, ok := inst.(snapshot.InventorySource); ok {
			src.Inventory = i
		}
	}
	if inst, ok := c.reg.Get(registry.KindQuestTracker); ok {
		if s, ok := inst.(snapshot.StageSource); ok {
			src.Stage = s
		}
	}
	return src
}

// applyTargets assembles the restore-side view of the held singletons,
// resolved at apply time because the singletons may only have materialized
// during the bootstrap hop.
func (c *Coordinator) applyTargets() snapshot.Targets {
	tg := snapshot.Targets{Capacity: c.capacity}
	if c.catalog != nil {
		tg.Resolve = func(itemID string) (string, error) {
			def, err := c.catalog.Resolve(itemID)
			if err != nil {
				return "", err
			}
			return def.ID, nil
		}
	}
	if inst, ok := c.reg.Get(registry.KindPlayer); ok {
		if p, ok := inst.(snapshot.PlayerTarget); ok {
			tg.Player = p
		}
		if i, ok := inst.(snapshot.InventoryTarget); ok {
			tg.Inventory = i
		}
	}
	if inst, ok := c.reg.Get(registry.KindQuestTracker); ok {
		if s, ok := inst.(snapshot.StageTarget); ok {
			tg.Stage = s
		}
	}
	return tg
}

func (c *Coordinator) emit(ctx context.Context, name string, severity telemetry.Severity,
	slot int, snap snapshot.Snapshot, attrs map[string]string) {
	if c.emitter == nil {
		return
	}
	evt := storage.TelemetryEvent{
		EventName:  name,
		Severity:   string(severity),
		Slot:       slot,
		RegionID:   snap.RegionID,
		Stage:      snap.Stage,
		Attributes: attrs,
	}
	if err := c.emitter.Emit(ctx, evt); err != nil {
		log.Printf("transition: emit %s telemetry: %v", name, err)
	}
}
