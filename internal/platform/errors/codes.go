// Package errors provides structured error handling for the save/load core.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Slot store errors
	CodeSlotInvalidIndex  Code = "SLOT_INVALID_INDEX"
	CodeSlotNotFound      Code = "SLOT_NOT_FOUND"
	CodeSlotCorruptRecord Code = "SLOT_CORRUPT_RECORD"
	CodeSlotWriteFailed   Code = "SLOT_WRITE_FAILED"

	// Catalog errors
	CodeItemUnresolved Code = "ITEM_UNRESOLVED"

	// Registry errors
	CodeSingletonDuplicate Code = "SINGLETON_DUPLICATE"
	CodeSingletonMissing   Code = "SINGLETON_MISSING"

	// Stage errors
	CodeStageAtTerminal Code = "STAGE_AT_TERMINAL"
	CodeStageInvalid    Code = "STAGE_INVALID"

	// Transition errors
	CodeRegionLoadFailure      Code = "REGION_LOAD_FAILURE"
	CodeConcurrentLoadRejected Code = "CONCURRENT_LOAD_REJECTED"
	CodeRegionUnknown          Code = "REGION_UNKNOWN"

	// Objective errors
	CodeObjectiveRuleInvalid Code = "OBJECTIVE_RULE_INVALID"
)

// Surfaced reports whether an error with this code is reported to the
// calling UI. Every other code is recovered in place with a logged
// diagnostic so a save or load never aborts the session.
func (c Code) Surfaced() bool {
	switch c {
	case CodeRegionLoadFailure, CodeConcurrentLoadRejected:
		return true
	default:
		return false
	}
}
