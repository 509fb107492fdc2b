package stage

import (
	"log"
	"sync"
)

// TerminalHook is invoked when the current stage enters the terminal value.
// The transition coordinator installs a hook that forces the ending-region
// transition; the machine guarantees it fires at most once per terminal
// entry regardless of how often the current stage is queried afterwards.
type TerminalHook func()

// Machine holds the current progression stage and enforces its invariants.
type Machine struct {
	mu            sync.Mutex
	current       Stage
	terminalFired bool
	onTerminal    TerminalHook
}

// NewMachine creates a machine at the initial stage.
func NewMachine() *Machine {
	return &Machine{current: Tutorial}
}

// SetTerminalHook installs the forced ending-transition hook.
// Installed once during wiring, before any stage mutation.
func (m *Machine) SetTerminalHook(hook TerminalHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTerminal = hook
}

// Current returns the current stage.
func (m *Machine) Current() Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves progression to the next stage. Advancing past the terminal
// stage is a logged no-op.
func (m *Machine) Advance() {
	m.mu.Lock()
	if m.current >= Terminal {
		m.mu.Unlock()
		log.Printf("stage: already at final stage %s, cannot advance further", Terminal)
		return
	}
	previous := m.current
	m.current++
	hook := m.terminalEntryHookLocked()
	m.mu.Unlock()

	log.Printf("stage: advanced %s -> %s", previous, m.Current())
	if hook != nil {
		hook()
	}
}

// Set assigns the stage directly. Used only when restoring a save, so any
// defined stage is permitted, including moving backward.
func (m *Machine) Set(target Stage) {
	m.mu.Lock()
	previous := m.current
	m.current = target
	if target < Terminal {
		// Leaving the terminal stage re-arms the ending trigger.
		m.terminalFired = false
	}
	hook := m.terminalEntryHookLocked()
	m.mu.Unlock()

	log.Printf("stage: set %s -> %s", previous, target)
	if hook != nil {
		hook()
	}
}

// Reset returns progression to the initial stage for a new game.
func (m *Machine) Reset() {
	m.Set(Tutorial)
}

// IsAtLeast reports whether progression has reached the given stage.
func (m *Machine) IsAtLeast(required Stage) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current >= required
}

// terminalEntryHookLocked returns the hook to fire if the current mutation
// entered the terminal stage for the first time since the last re-arm.
func (m *Machine) terminalEntryHookLocked() TerminalHook {
	if m.current != Terminal || m.terminalFired {
		return nil
	}
	m.terminalFired = true
	return m.onTerminal
}
