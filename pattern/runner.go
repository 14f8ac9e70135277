package pattern

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/battlebox/attack"
)

// Runner is the contract the battle layer drives one enemy turn through.
// Pattern is the plain wave-timed implementation; Composer sequences
// several patterns as phases of a single turn; Choreography couples a
// timeline to a shared pool.
type Runner interface {
	// Update advances one tick. The env's spawn hook and pool view are
	// bound for the duration of the call.
	Update(env *attack.Env)
	// Arm rebinds the env's hooks after Update so collision callbacks can
	// still spawn into the live set.
	Arm(env *attack.Env)
	Live() []attack.Object
	LiveCount() int
	Active() bool
	Cancel()
	Draw(dst *ebiten.Image)
	String() string
}

var (
	_ Runner = (*Pattern)(nil)
	_ Runner = (*Composer)(nil)
	_ Runner = (*Choreography)(nil)
)
