// Package objective evaluates stage-completion rules against the player's
// inventory and advances progression when a rule is satisfied.
//
// Rules are expressions over an item-count function so designers can tune
// objectives (kill counts tracked as dropped loot, fetch quests) without a
// code change. A satisfied rule advances the stage machine and may force a
// transition to the rule's follow-up region.
package objective

import (
	"log"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/region"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/stage"
	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
)

// Rule ties one stage to its completion expression. NextRegion, when set,
// is force-loaded after the stage advances.
type Rule struct {
	Stage      stage.Stage
	Expression string
	NextRegion region.ID
}

// Counter exposes the inventory count query rules evaluate against.
type Counter interface {
	Count(itemID string) int
}

// Transitioner accepts the forced region transition a completed rule asks for.
type Transitioner interface {
	ForceTransition(id region.ID)
}

type compiledRule struct {
	rule    Rule
	program *vm.Program
}

// Tracker is the persistent quest-tracker subsystem.
type Tracker struct {
	mu      sync.Mutex
	machine *stage.Machine
	counter Counter
	trans   Transitioner
	rules   map[stage.Stage]compiledRule
}

// NewTracker compiles the rules and returns a tracker over them. A rule
// that fails to compile is a content defect and rejects the whole set.
func NewTracker(machine *stage.Machine, counter Counter, trans Transitioner, rules []Rule) (*Tracker, error) {
	compiled := make(map[stage.Stage]compiledRule, len(rules))
	for _, r := range rules {
		program, err := expr.Compile(r.Expression, expr.Env(ruleEnv(nil)), expr.AsBool())
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeObjectiveRuleInvalid,
				"compile objective rule for stage "+r.Stage.String(), err)
		}
		compiled[r.Stage] = compiledRule{rule: r, program: program}
	}
	return &Tracker{
		machine: machine,
		counter: counter,
		trans:   trans,
		rules:   compiled,
	}, nil
}

func ruleEnv(counter Counter) map[string]any {
	return map[string]any{
		"count": func(itemID string) int {
			if counter == nil {
				return 0
			}
			return counter.Count(itemID)
		},
	}
}

// Evaluate checks the current stage's rule, advancing the stage and
// requesting the follow-up transition when the rule is satisfied. Called
// once per simulation tick; stages without a rule are skipped.
func (t *Tracker) Evaluate() {
	t.mu.Lock()
	current := t.machine.Current()
	compiled, ok := t.rules[current]
	t.mu.Unlock()
	if !ok {
		return
	}

	result, err := expr.Run(compiled.program, ruleEnv(t.counter))
	if err != nil {
		log.Printf("objective: rule for stage %s failed to evaluate: %v", current, err)
		return
	}
	satisfied, ok := result.(bool)
	if !ok || !satisfied {
		return
	}

	log.Printf("objective: stage %s complete", current)
	t.machine.Advance()
	if compiled.rule.NextRegion != "" && t.trans != nil {
		t.trans.ForceTransition(compiled.rule.NextRegion)
	}
}

// CurrentStageIndex exposes the stage index for snapshot capture.
func (t *Tracker) CurrentStageIndex() int {
	return int(t.machine.Current())
}

// SetStageIndex restores the stage from a snapshot. Invalid indexes are a
// logged no-op so a tampered save never crashes the session.
func (t *Tracker) SetStageIndex(index int) {
	s, err := stage.FromIndex(index)
	if err != nil {
		log.Printf("objective: ignoring restored stage: %v", err)
		return
	}
	t.machine.Set(s)
}

// Destroy releases the tracker.
func (t *Tracker) Destroy() {}

// DefaultRules returns the shipped objective set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Stage:      stage.ForestHunt,
			Expression: `count("slime_residue") >= 2 && count("bat_bone") >= 2`,
			NextRegion: "Village",
		},
		{
			Stage:      stage.CaveExploration,
			Expression: `count("cave_crystal") >= 3`,
			NextRegion: "PeuangSad",
		},
	}
}
