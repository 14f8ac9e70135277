package battle

import "testing"

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
		ok   bool
	}{
		{"menu to action processing", StateMenuSelection, StateActionProcessing, true},
		{"menu to submenu", StateMenuSelection, StateSubmenuSelection, true},
		{"menu cannot skip to enemy attacking", StateMenuSelection, StateEnemyAttacking, false},
		{"idle to intro", StateIdle, StateIntro, true},
		{"idle cannot jump to dodging", StateIdle, StateDodging, false},
		{"dodging to defeat", StateDodging, StateDefeat, true},
		{"victory only back to idle", StateVictory, StateIdle, true},
		{"victory cannot restart mid-flow", StateVictory, StatePlayerTurnStart, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m.Force(tt.from)
			err := m.To(tt.to)
			if tt.ok && err != nil {
				t.Fatalf("To(%s) rejected: %v", tt.to, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("To(%s) accepted, want rejection", tt.to)
				}
				if m.State() != tt.from {
					t.Fatalf("state changed on rejected transition: %s", m.State())
				}
			}
		})
	}
}

func TestMachinePreviousAndForce(t *testing.T) {
	m := NewMachine()
	if err := m.To(StateIntro); err != nil {
		t.Fatalf("To(intro): %v", err)
	}
	if m.Previous() != StateIdle {
		t.Fatalf("previous = %s, want idle", m.Previous())
	}

	m.Force(StateDefeat)
	if m.State() != StateDefeat {
		t.Fatalf("state after force = %s, want defeat", m.State())
	}
	if m.Previous() != StateIntro {
		t.Fatalf("previous after force = %s, want intro", m.Previous())
	}
}

func TestMachineDebounceGatesMenuInput(t *testing.T) {
	m := NewMachine()
	m.Force(StateMenuSelection)
	if !m.Transitioning() {
		t.Fatal("debounce window not open after transition")
	}
	if m.CanSelectMenuOption() {
		t.Fatal("menu input allowed inside debounce window")
	}

	for i := 0; i < debounceFrames; i++ {
		m.Update()
	}
	if m.Transitioning() {
		t.Fatal("debounce window never closed")
	}
	if !m.CanSelectMenuOption() {
		t.Fatal("menu input blocked after debounce")
	}
}

func TestMachineListeners(t *testing.T) {
	m := NewMachine()
	var got []State
	token := m.AddListener(func(from, to State) { got = append(got, to) })

	_ = m.To(StateIntro)
	_ = m.To(StatePlayerTurnStart)
	if len(got) != 2 || got[0] != StateIntro || got[1] != StatePlayerTurnStart {
		t.Fatalf("listener saw %v", got)
	}

	m.RemoveListener(token)
	_ = m.To(StateMenuSelection)
	if len(got) != 2 {
		t.Fatal("listener fired after removal")
	}
}

func TestCanPlayerMoveStates(t *testing.T) {
	m := NewMachine()
	for _, s := range []State{StateDodging, StatePlayerHit, StateDamageFlash} {
		m.Force(s)
		if !m.CanPlayerMove() {
			t.Fatalf("CanPlayerMove false in %s", s)
		}
	}
	m.Force(StateMenuSelection)
	if m.CanPlayerMove() {
		t.Fatal("CanPlayerMove true in menu")
	}
}
