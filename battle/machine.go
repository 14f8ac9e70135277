package battle

import (
	"fmt"

	"github.com/google/uuid"
)

// debounceFrames is the post-transition window during which the input
// gates stay closed, so a double-tapped confirm cannot submit twice.
const debounceFrames = 8

// legalTransitions enumerates every (from, to) pair the battle flow
// permits. Anything else is rejected unless forced.
var legalTransitions = map[State][]State{
	StateIdle:             {StateIntro},
	StateIntro:            {StatePlayerTurnStart},
	StatePlayerTurnStart:  {StateMenuSelection},
	StateMenuSelection:    {StateSubmenuSelection, StateActionProcessing},
	StateSubmenuSelection: {StateActionProcessing, StateMenuSelection},
	StateActionProcessing: {StateFightAnimation, StateDialogueDisplay, StateVictory},
	StateFightAnimation:   {StateDialogueDisplay, StateVictory},
	StateDialogueDisplay:  {StateEnemyTurnStart, StateVictory},
	StateEnemyTurnStart:   {StateEnemyDialogue},
	StateEnemyDialogue:    {StateEnemyAttacking},
	StateEnemyAttacking:   {StateDodging},
	StateDodging:          {StatePlayerHit, StatePlayerTurnStart, StateDefeat},
	StatePlayerHit:        {StateDamageFlash},
	StateDamageFlash:      {StateDodging, StateDefeat},
	StateVictory:          {StateIdle},
	StateDefeat:           {StateIdle},
}

// Machine validates battle state changes against the transition table
// and notifies listeners on every accepted change.
type Machine struct {
	state    State
	previous State
	debounce int

	listeners map[uuid.UUID]func(from, to State)
}

func NewMachine() *Machine {
	return &Machine{
		state:     StateIdle,
		previous:  StateIdle,
		listeners: map[uuid.UUID]func(from, to State){},
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Previous returns the state before the last accepted transition.
func (m *Machine) Previous() State { return m.previous }

// Transitioning reports whether the post-transition debounce window is
// still open.
func (m *Machine) Transitioning() bool { return m.debounce > 0 }

// Update advances the debounce window. Call once per tick.
func (m *Machine) Update() {
	if m.debounce > 0 {
		m.debounce--
	}
}

// CanTransition reports whether the table permits state -> to.
func (m *Machine) CanTransition(to State) bool {
	for _, s := range legalTransitions[m.state] {
		if s == to {
			return true
		}
	}
	return false
}

// To requests a validated transition. An illegal request is logged and
// rejected with the state unchanged; the caller's action becomes a
// no-op, never a crash.
func (m *Machine) To(to State) error {
	if !m.CanTransition(to) {
		err := fmt.Errorf("battle: illegal transition %s -> %s", m.state, to)
		fmt.Printf("battle: rejected transition %s -> %s\n", m.state, to)
		return err
	}
	m.apply(to)
	return nil
}

// Force applies a transition without consulting the table. Reserved for
// orchestration-level overrides like instant defeat.
func (m *Machine) Force(to State) {
	m.apply(to)
}

func (m *Machine) apply(to State) {
	from := m.state
	m.previous = from
	m.state = to
	m.debounce = debounceFrames
	for _, cb := range m.listeners {
		cb(from, to)
	}
}

// AddListener registers a transition callback and returns a token for
// removal.
func (m *Machine) AddListener(cb func(from, to State)) uuid.UUID {
	token := uuid.New()
	m.listeners[token] = cb
	return token
}

// RemoveListener drops a previously registered callback. Unknown tokens
// are ignored.
func (m *Machine) RemoveListener(token uuid.UUID) {
	delete(m.listeners, token)
}

// CanSelectMenuOption gates all menu input: only during menu states and
// never inside the debounce window.
func (m *Machine) CanSelectMenuOption() bool {
	if m.Transitioning() {
		return false
	}
	return m.state == StateMenuSelection || m.state == StateSubmenuSelection
}

// CanPlayerMove gates soul movement: only while dodging, including the
// hit-flash substates so a hit never freezes the player.
func (m *Machine) CanPlayerMove() bool {
	switch m.state {
	case StateDodging, StatePlayerHit, StateDamageFlash:
		return true
	}
	return false
}
