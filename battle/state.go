// Package battle owns the turn state machine, the collision arbiter,
// and the encounter orchestration that ties the soul, the enemy, and
// the attack patterns together.
package battle

// State is one node of the battle turn flow.
type State int

const (
	StateIdle State = iota
	StateIntro
	StatePlayerTurnStart
	StateMenuSelection
	StateSubmenuSelection
	StateActionProcessing
	StateFightAnimation
	StateDialogueDisplay
	StateEnemyTurnStart
	StateEnemyDialogue
	StateEnemyAttacking
	StateDodging
	StatePlayerHit
	StateDamageFlash
	StateVictory
	StateDefeat
)

var stateNames = map[State]string{
	StateIdle:             "idle",
	StateIntro:            "intro",
	StatePlayerTurnStart:  "player_turn_start",
	StateMenuSelection:    "menu_selection",
	StateSubmenuSelection: "submenu_selection",
	StateActionProcessing: "action_processing",
	StateFightAnimation:   "fight_animation",
	StateDialogueDisplay:  "dialogue_display",
	StateEnemyTurnStart:   "enemy_turn_start",
	StateEnemyDialogue:    "enemy_dialogue",
	StateEnemyAttacking:   "enemy_attacking",
	StateDodging:          "dodging",
	StatePlayerHit:        "player_hit",
	StateDamageFlash:      "damage_flash",
	StateVictory:          "victory",
	StateDefeat:           "defeat",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Terminal reports whether the state only transitions back to idle.
func (s State) Terminal() bool {
	return s == StateVictory || s == StateDefeat
}
