package battle

import (
	"fmt"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/battlebox/attack"
	"github.com/milk9111/battlebox/input"
	"github.com/milk9111/battlebox/pattern"
	"github.com/milk9111/battlebox/soul"
)

const (
	introFrames     = 60
	dialogueMin     = 30
	dialogueMax     = 240
	fightAnimFrames = 45
	telegraphFrames = 30
	flashFrames     = 20
)

// PatternBuilder produces a fresh turn runner. Patterns hold fired
// flags and cannot be replayed, so each enemy turn builds anew.
type PatternBuilder func() pattern.Runner

// Encounter orchestrates one full fight: the soul, the enemy, the turn
// machine, the collision arbiter, and the per-turn attack patterns.
type Encounter struct {
	Soul    *soul.Soul
	Enemy   *Enemy
	Machine *Machine
	Arbiter *Arbiter
	Arena   cp.BB

	HP           float64
	MaxHP        float64
	PlayerAttack float64
	Items        []Item

	builders []PatternBuilder
	current  pattern.Runner
	shots    []attack.Object
	env      attack.Env

	// Dialogue is the line currently shown in the box.
	Dialogue string

	pending    actionKind
	pendingIdx int

	turn  int
	timer int
	frame int
	rng   *rand.Rand
}

type actionKind int

const (
	actionNone actionKind = iota
	actionFight
	actionAct
	actionItem
	actionMercy
)

func NewEncounter(enemy *Enemy, builders []PatternBuilder, arena cp.BB) *Encounter {
	center := cp.Vector{X: (arena.L + arena.R) / 2, Y: (arena.B + arena.T) / 2}
	return &Encounter{
		Soul:         soul.New(center.X, center.Y),
		Enemy:        enemy,
		Machine:      NewMachine(),
		Arbiter:      NewArbiter(),
		Arena:        arena,
		HP:           20,
		MaxHP:        20,
		PlayerAttack: 5,
		builders:     builders,
		rng:          rand.New(rand.NewSource(rand.Int63())),
	}
}

// Begin starts the fight from idle.
func (e *Encounter) Begin() {
	e.timer = 0
	_ = e.Machine.To(StateIntro)
}

// Turn returns the completed enemy-turn count.
func (e *Encounter) Turn() int { return e.turn }

// CurrentPattern returns the running attack turn, nil outside the enemy
// turn.
func (e *Encounter) CurrentPattern() pattern.Runner { return e.current }

// Shots returns the player's live ranged-mode bullets.
func (e *Encounter) Shots() []attack.Object { return e.shots }

// SetSoulMode installs the movement mode. The ranged mode's fire
// callback is wired to the encounter's shot pool here.
func (e *Encounter) SetSoulMode(m soul.Mode) {
	if r, ok := m.(*soul.Ranged); ok {
		r.Fire = e.FireSoulShot
	}
	e.Soul.SetMode(m)
}

// FireSoulShot spawns a player bullet at pos travelling along dir. The
// ranged movement mode invokes this through its fire callback.
func (e *Encounter) FireSoulShot(pos, dir cp.Vector) {
	const shotSpeed = 6
	if dir.LengthSq() == 0 {
		dir = cp.Vector{X: 0, Y: -1}
	}
	dir = dir.Normalize()
	e.shots = append(e.shots, attack.NewSoulShot(pos.X, pos.Y, dir.X*shotSpeed, dir.Y*shotSpeed))
}

// SelectFight queues the fight action. No-op unless the menu is open.
func (e *Encounter) SelectFight() {
	if !e.Machine.CanSelectMenuOption() {
		return
	}
	e.pending = actionFight
	_ = e.Machine.To(StateActionProcessing)
}

// OpenSubmenu moves from the top menu into ACT/ITEM listings.
func (e *Encounter) OpenSubmenu() {
	if !e.Machine.CanSelectMenuOption() || e.Machine.State() != StateMenuSelection {
		return
	}
	_ = e.Machine.To(StateSubmenuSelection)
}

// CancelSubmenu backs out to the top menu.
func (e *Encounter) CancelSubmenu() {
	if e.Machine.State() != StateSubmenuSelection {
		return
	}
	_ = e.Machine.To(StateMenuSelection)
}

// SelectAct queues the i-th ACT option.
func (e *Encounter) SelectAct(i int) {
	if !e.Machine.CanSelectMenuOption() {
		return
	}
	if e.Enemy == nil || i < 0 || i >= len(e.Enemy.Acts) {
		return
	}
	e.pending = actionAct
	e.pendingIdx = i
	_ = e.Machine.To(StateActionProcessing)
}

// UseItem queues the i-th inventory item.
func (e *Encounter) UseItem(i int) {
	if !e.Machine.CanSelectMenuOption() {
		return
	}
	if i < 0 || i >= len(e.Items) {
		return
	}
	e.pending = actionItem
	e.pendingIdx = i
	_ = e.Machine.To(StateActionProcessing)
}

// SelectMercy queues the spare attempt.
func (e *Encounter) SelectMercy() {
	if !e.Machine.CanSelectMenuOption() {
		return
	}
	e.pending = actionMercy
	_ = e.Machine.To(StateActionProcessing)
}

// Update advances the encounter one tick. Call after input polling.
func (e *Encounter) Update(in *input.State) {
	if e == nil {
		return
	}
	e.frame++
	e.Machine.Update()

	switch e.Machine.State() {
	case StateIdle:
		// waiting for Begin

	case StateIntro:
		e.timer++
		if e.timer >= introFrames {
			e.timer = 0
			_ = e.Machine.To(StatePlayerTurnStart)
		}

	case StatePlayerTurnStart:
		e.Dialogue = ""
		e.pending = actionNone
		_ = e.Machine.To(StateMenuSelection)

	case StateMenuSelection, StateSubmenuSelection:
		// menu UI drives transitions through the Select* methods

	case StateActionProcessing:
		e.resolveAction()

	case StateFightAnimation:
		e.timer++
		if e.timer >= fightAnimFrames {
			e.timer = 0
			e.applyFightDamage()
		}

	case StateDialogueDisplay:
		if e.advanceDialogue(in) {
			_ = e.Machine.To(StateEnemyTurnStart)
		}

	case StateEnemyTurnStart:
		e.Dialogue = e.Enemy.NextDialogue()
		e.current = e.buildTurnPattern()
		e.timer = 0
		_ = e.Machine.To(StateEnemyDialogue)

	case StateEnemyDialogue:
		if e.advanceDialogue(in) {
			e.Dialogue = ""
			_ = e.Machine.To(StateEnemyAttacking)
		}

	case StateEnemyAttacking:
		e.timer++
		if e.timer >= telegraphFrames {
			e.timer = 0
			_ = e.Machine.To(StateDodging)
		}

	case StateDodging:
		e.updateDodge(in)
		if e.Machine.State() != StateDodging {
			return
		}
		if e.current == nil || !e.current.Active() {
			e.current = nil
			e.clearShots()
			e.turn++
			e.timer = 0
			_ = e.Machine.To(StatePlayerTurnStart)
		}

	case StatePlayerHit:
		e.timer = 0
		_ = e.Machine.To(StateDamageFlash)
		e.updateDodge(in)

	case StateDamageFlash:
		e.updateDodge(in)
		if e.Machine.State() != StateDamageFlash {
			return
		}
		e.timer++
		if e.timer >= flashFrames {
			e.timer = 0
			_ = e.Machine.To(StateDodging)
		}

	case StateVictory, StateDefeat:
		if in != nil && in.ConfirmPressed && !e.Machine.Transitioning() {
			_ = e.Machine.To(StateIdle)
		}
	}
}

// updateDodge runs the shared dodge-tick: soul movement, pattern
// advancement, and collision arbitration.
func (e *Encounter) updateDodge(in *input.State) {
	if !e.Machine.CanPlayerMove() {
		in = &input.State{}
	}
	e.Soul.Update(in, e.Arena)

	e.env = attack.Env{
		Arena:  e.Arena,
		Target: e.Soul.Center(),
		Frame:  e.frame,
	}
	if e.current != nil {
		e.current.Update(&e.env)
	}
	e.updateShots()

	var objs []attack.Object
	if e.current != nil {
		objs = e.current.Live()
		// re-arm so contact detonations during arbitration spawn back
		// into the live set instead of vanishing
		e.current.Arm(&e.env)
	}
	ev := e.Arbiter.Resolve(e.Soul, objs, &e.env)
	if ev == nil {
		return
	}

	e.HP -= ev.Damage
	if e.HP <= 0 {
		e.HP = 0
		if e.current != nil {
			e.current.Cancel()
			e.current = nil
		}
		e.clearShots()
		e.Dialogue = "You cannot give up just yet..."
		if err := e.Machine.To(StateDefeat); err != nil {
			e.Machine.Force(StateDefeat)
		}
		return
	}
	if e.Machine.State() == StateDodging {
		_ = e.Machine.To(StatePlayerHit)
	}
}

// updateShots advances the player's bullets and collides them against
// the enemy's attacks. A hit destroys both; beams, walls, and blasters
// shrug shots off.
func (e *Encounter) updateShots() {
	if len(e.shots) == 0 {
		return
	}
	var objs []attack.Object
	if e.current != nil {
		objs = e.current.Live()
	}
	writeIdx := 0
	for _, sh := range e.shots {
		if sh == nil || !sh.Active() {
			continue
		}
		sh.Update(&e.env)
		if !sh.Active() {
			continue
		}
		for _, o := range objs {
			if o == nil || !o.Active() {
				continue
			}
			if _, ok := o.(attack.PointCollider); ok {
				continue
			}
			if o.Bounds().Intersects(sh.Bounds()) {
				o.Deactivate()
				sh.Deactivate()
				break
			}
		}
		if !sh.Active() {
			continue
		}
		e.shots[writeIdx] = sh
		writeIdx++
	}
	e.shots = e.shots[:writeIdx]
}

func (e *Encounter) clearShots() {
	for _, sh := range e.shots {
		if sh != nil {
			sh.Deactivate()
		}
	}
	e.shots = e.shots[:0]
}

func (e *Encounter) resolveAction() {
	switch e.pending {
	case actionFight:
		e.timer = 0
		_ = e.Machine.To(StateFightAnimation)

	case actionAct:
		act := e.Enemy.Acts[e.pendingIdx]
		e.Enemy.AddMercy(act.MercyGain)
		e.Dialogue = act.Response
		e.timer = 0
		_ = e.Machine.To(StateDialogueDisplay)

	case actionItem:
		item := e.Items[e.pendingIdx]
		e.HP += item.Heal
		if e.HP > e.MaxHP {
			e.HP = e.MaxHP
		}
		e.Items = append(e.Items[:e.pendingIdx], e.Items[e.pendingIdx+1:]...)
		e.Dialogue = fmt.Sprintf("You ate the %s. Recovered %g HP!", item.Name, item.Heal)
		e.timer = 0
		_ = e.Machine.To(StateDialogueDisplay)

	case actionMercy:
		if e.Enemy.Spareable() {
			e.Dialogue = fmt.Sprintf("You spared %s.", e.Enemy.Name)
			_ = e.Machine.To(StateVictory)
			return
		}
		e.Dialogue = fmt.Sprintf("%s's name isn't yellow yet...", e.Enemy.Name)
		e.timer = 0
		_ = e.Machine.To(StateDialogueDisplay)

	default:
		// nothing queued, bounce back to the enemy turn so the flow
		// cannot stall
		e.timer = 0
		_ = e.Machine.To(StateDialogueDisplay)
	}
	e.pending = actionNone
}

func (e *Encounter) applyFightDamage() {
	roll := float64(e.rng.Intn(3))
	dealt := e.Enemy.TakeDamage(e.PlayerAttack + roll)
	if !e.Enemy.Alive() {
		e.Dialogue = fmt.Sprintf("%s was defeated!", e.Enemy.Name)
		_ = e.Machine.To(StateVictory)
		return
	}
	e.Dialogue = fmt.Sprintf("You dealt %g damage!", dealt)
	e.timer = 0
	_ = e.Machine.To(StateDialogueDisplay)
}

// advanceDialogue holds a line for a minimum window, then either the
// confirm key or the auto-advance timeout moves on.
func (e *Encounter) advanceDialogue(in *input.State) bool {
	e.timer++
	if e.timer < dialogueMin {
		return false
	}
	if in != nil && in.ConfirmPressed {
		e.timer = 0
		return true
	}
	if e.timer >= dialogueMax {
		e.timer = 0
		return true
	}
	return false
}

func (e *Encounter) buildTurnPattern() pattern.Runner {
	if len(e.builders) == 0 {
		return nil
	}
	b := e.builders[e.turn%len(e.builders)]
	if b == nil {
		return nil
	}
	return b()
}

// Draw renders the battle box, the attack pattern, the soul, and the
// dialogue/HP readouts.
func (e *Encounter) Draw(dst *ebiten.Image) {
	if e == nil || dst == nil {
		return
	}
	vector.StrokeRect(dst,
		float32(e.Arena.L)-2, float32(e.Arena.B)-2,
		float32(e.Arena.R-e.Arena.L)+4, float32(e.Arena.T-e.Arena.B)+4,
		2, colornames.White, false)

	if e.current != nil {
		e.current.Draw(dst)
	}
	for _, sh := range e.shots {
		if sh != nil && sh.Active() {
			sh.Draw(dst)
		}
	}
	if e.Machine.CanPlayerMove() {
		e.Soul.Draw(dst)
	}

	if e.Dialogue != "" {
		ebitenutil.DebugPrintAt(dst, e.Dialogue, int(e.Arena.L)+8, int(e.Arena.B)+8)
	}
	hud := fmt.Sprintf("HP %g/%g   %s HP %g/%g   MERCY %g", e.HP, e.MaxHP, e.Enemy.Name, e.Enemy.HP, e.Enemy.MaxHP, e.Enemy.Mercy)
	ebitenutil.DebugPrintAt(dst, hud, int(e.Arena.L), int(e.Arena.T)+8)
}
