package soul

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/input"
)

const defaultFireCooldown = 18

// Ranged is normal movement plus cooldown-gated shots in the last faced
// direction. The shots themselves belong to the battle layer; the mode
// only invokes Fire.
type Ranged struct {
	// CooldownFrames between shots.
	CooldownFrames int
	// Fire is invoked with the soul position and a unit aim vector.
	Fire func(pos, dir cp.Vector)

	facing   cp.Vector
	cooldown int
}

func (Ranged) Name() string { return "ranged" }

func (m *Ranged) Enter(s *Soul) {
	if m.CooldownFrames <= 0 {
		m.CooldownFrames = defaultFireCooldown
	}
	if m.facing.LengthSq() == 0 {
		m.facing = cp.Vector{X: 0, Y: -1}
	}
	m.cooldown = 0
}

func (m *Ranged) Exit(s *Soul) {}

// Facing returns the current unit aim vector.
func (m *Ranged) Facing() cp.Vector { return m.facing }

func (m *Ranged) Update(s *Soul, in *input.State, arena cp.BB) {
	if m.cooldown > 0 {
		m.cooldown--
	}
	if in == nil {
		clampToArena(s, arena)
		return
	}

	v := cp.Vector{X: in.MoveX, Y: in.MoveY}
	if l := v.Length(); l > 0 {
		m.facing = v.Mult(1 / l)
		if l > 1 {
			v = v.Mult(1 / l)
		}
	}
	s.Pos = s.Pos.Add(v.Mult(s.Speed))
	clampToArena(s, arena)

	if in.FirePressed && m.cooldown == 0 && m.Fire != nil {
		m.Fire(s.Pos, m.facing)
		m.cooldown = m.CooldownFrames
	}
}
