package soul

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/battlebox/common"
	"github.com/milk9111/battlebox/input"
)

// RailLine is one traversable segment for rail-constrained movement.
type RailLine struct {
	From, To cp.Vector
}

// Rail restricts the soul to 1-D progress along the current line
// segment; the switch key hops between lines keeping progress.
type Rail struct {
	Lines []RailLine

	index    int
	progress float64
}

func (Rail) Name() string { return "rail" }

func (m *Rail) Enter(s *Soul) {
	if m.index >= len(m.Lines) {
		m.index = 0
	}
	m.progress = common.Clamp(m.progress, 0, 1)
	m.snap(s)
}

func (m *Rail) Exit(s *Soul) {}

// Line returns the index of the current line.
func (m *Rail) Line() int { return m.index }

// Progress returns the position along the current line in [0, 1].
func (m *Rail) Progress() float64 { return m.progress }

func (m *Rail) Update(s *Soul, in *input.State, arena cp.BB) {
	if len(m.Lines) == 0 {
		clampToArena(s, arena)
		return
	}
	if in != nil {
		if in.SwitchPressed {
			m.index = (m.index + 1) % len(m.Lines)
		}
		line := m.Lines[m.index]
		dir := line.To.Sub(line.From)
		length := dir.Length()
		if length > common.Epsilon {
			// project the input onto the line so either axis can drive it
			along := cp.Vector{X: in.MoveX, Y: in.MoveY}.Dot(dir.Mult(1 / length))
			m.progress = common.Clamp(m.progress+along*s.Speed/length, 0, 1)
		}
	}
	m.snap(s)
}

func (m *Rail) snap(s *Soul) {
	if len(m.Lines) == 0 {
		return
	}
	line := m.Lines[m.index]
	s.Pos = line.From.Lerp(line.To, m.progress)
}

// DrawOverlay renders the rail segments so the constraint is visible.
func (m *Rail) DrawOverlay(s *Soul, dst *ebiten.Image) {
	for _, l := range m.Lines {
		vector.StrokeLine(dst, float32(l.From.X), float32(l.From.Y), float32(l.To.X), float32(l.To.Y), 1, colornames.Dimgray, false)
	}
}
