package soul

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/battlebox/common"
	"github.com/milk9111/battlebox/input"
)

// Shield locks the soul at the arena center and aims a directional
// shield panel with the movement keys. Attacks arriving inside the
// panel's arc are blocked.
type Shield struct {
	// Aim is the shield heading, radians, wrapped to [0, 2pi).
	Aim float64
	// ArcWidth is the full blockable arc. Defaults to a quarter circle.
	ArcWidth float64
	// PanelRadius is the draw distance of the panel from the soul.
	PanelRadius float64
}

func (Shield) Name() string { return "shield" }

func (m *Shield) Enter(s *Soul) {
	if m.ArcWidth <= 0 {
		m.ArcWidth = math.Pi / 2
	}
	if m.PanelRadius <= 0 {
		m.PanelRadius = s.Size + 10
	}
}

func (m *Shield) Exit(s *Soul) {}

func (m *Shield) Update(s *Soul, in *input.State, arena cp.BB) {
	s.Pos = cp.Vector{X: (arena.L + arena.R) / 2, Y: (arena.B + arena.T) / 2}
	if in == nil {
		return
	}
	v := cp.Vector{X: in.MoveX, Y: in.MoveY}
	if v.LengthSq() > 0 {
		m.Aim = common.WrapAngle(v.ToAngle())
	}
}

// Blocks reports whether an attack arriving from the given direction
// (radians, pointing from the soul outward toward the attack) falls
// inside the shield arc.
func (m *Shield) Blocks(angle float64) bool {
	return math.Abs(common.AngleDiff(angle, m.Aim)) <= m.ArcWidth/2
}

// DrawOverlay renders the shield panel as a short arc chord.
func (m *Shield) DrawOverlay(s *Soul, dst *ebiten.Image) {
	half := m.ArcWidth / 2
	a := s.Pos.Add(cp.ForAngle(m.Aim - half).Mult(m.PanelRadius))
	b := s.Pos.Add(cp.ForAngle(m.Aim + half).Mult(m.PanelRadius))
	vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 3, colornames.Skyblue, true)
}
