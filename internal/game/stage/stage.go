// Package stage tracks the game's linear quest progression.
//
// Progression is append-only during play: gameplay can only advance to the
// next stage, while restoring a save assigns any previously reached stage
// directly. Entering the terminal stage forces a single transition to the
// ending region.
package stage

import (
	"fmt"

	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
)

// Stage is one step of the game's ordered progression.
type Stage int

const (
	Tutorial Stage = iota
	ForestHunt
	WeaponUpgrade1
	CaveExploration
	SadCutscene
	UnkillableBoss
	WeaponUpgrade2
	FinalBoss
	Ending
)

// Count is the number of defined stages.
const Count = int(Ending) + 1

// Terminal is the final stage of the progression.
const Terminal = Ending

var stageNames = map[Stage]string{
	Tutorial:        "tutorial",
	ForestHunt:      "forest_hunt",
	WeaponUpgrade1:  "weapon_upgrade_1",
	CaveExploration: "cave_exploration",
	SadCutscene:     "sad_cutscene",
	UnkillableBoss:  "unkillable_boss",
	WeaponUpgrade2:  "weapon_upgrade_2",
	FinalBoss:       "final_boss",
	Ending:          "ending",
}

// String returns the stable label for a stage.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Valid reports whether s is a defined stage.
func (s Stage) Valid() bool {
	return s >= Tutorial && s <= Ending
}

// FromIndex converts a persisted integer index into a Stage.
func FromIndex(index int) (Stage, error) {
	s := Stage(index)
	if !s.Valid() {
		return Tutorial, apperrors.WithMetadata(apperrors.CodeStageInvalid,
			"stage index out of range",
			map[string]string{"index": fmt.Sprintf("%d", index)})
	}
	return s, nil
}
