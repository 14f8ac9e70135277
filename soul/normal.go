package soul

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/input"
)

// Normal is free four-directional movement clamped to the arena, with
// diagonal speed normalized so corners are no faster than edges.
type Normal struct{}

func (Normal) Name() string  { return "normal" }
func (Normal) Enter(s *Soul) {}
func (Normal) Exit(s *Soul)  {}

func (Normal) Update(s *Soul, in *input.State, arena cp.BB) {
	if in == nil {
		clampToArena(s, arena)
		return
	}
	v := cp.Vector{X: in.MoveX, Y: in.MoveY}
	if l := v.Length(); l > 1 {
		v = v.Mult(1 / l)
	}
	s.Pos = s.Pos.Add(v.Mult(s.Speed))
	clampToArena(s, arena)
}
