// Package soul is the player avatar. All movement rules live in
// swappable Mode strategies; the Soul itself only carries position,
// size, invincibility, and the render trail.
package soul

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/common"
	"github.com/milk9111/battlebox/input"
)

const trailLen = 12

// Soul is the dodging avatar inside the battle box.
type Soul struct {
	Pos cp.Vector
	// Size is the collision radius in pixels.
	Size float64
	// Speed is pixels moved per tick at full input.
	Speed float64
	Col   color.RGBA

	mode Mode

	invincibleFrames int
	blinkFrame       int
	moved            bool
	prev             cp.Vector

	trail      [trailLen]cp.Vector
	trailHead  int
	trailCount int
}

func New(x, y float64) *Soul {
	s := &Soul{
		Pos:   cp.Vector{X: x, Y: y},
		Size:  8,
		Speed: 2.5,
		Col:   color.RGBA{R: 0xff, G: 0x20, B: 0x20, A: 0xff},
	}
	s.mode = &Normal{}
	s.mode.Enter(s)
	return s
}

// Mode returns the active movement mode.
func (s *Soul) Mode() Mode { return s.mode }

// SetMode swaps the movement strategy, running the old mode's exit hook
// and the new mode's enter hook. A nil mode is ignored.
func (s *Soul) SetMode(m Mode) {
	if s == nil || m == nil || m == s.mode {
		return
	}
	if s.mode != nil {
		s.mode.Exit(s)
	}
	s.mode = m
	m.Enter(s)
}

// Update delegates movement to the active mode, then refreshes the
// moved flag, the trail, and the invincibility countdown. Call once per
// tick after input polling.
func (s *Soul) Update(in *input.State, arena cp.BB) {
	if s == nil {
		return
	}
	s.prev = s.Pos
	if s.mode != nil {
		s.mode.Update(s, in, arena)
	}
	s.moved = s.Pos.Distance(s.prev) > common.Epsilon

	s.trail[s.trailHead] = s.Pos
	s.trailHead = (s.trailHead + 1) % trailLen
	if s.trailCount < trailLen {
		s.trailCount++
	}

	if s.invincibleFrames > 0 {
		s.invincibleFrames--
		s.blinkFrame++
	} else {
		s.blinkFrame = 0
	}
}

// IsMoving reports whether the position changed on the most recent tick.
// Blue and orange attacks gate their damage on this.
func (s *Soul) IsMoving() bool { return s != nil && s.moved }

// Center returns the collision center.
func (s *Soul) Center() cp.Vector { return s.Pos }

// Radius returns the collision radius.
func (s *Soul) Radius() float64 { return s.Size }

// Invincible reports whether the post-hit grace window is active.
func (s *Soul) Invincible() bool { return s != nil && s.invincibleFrames > 0 }

// InvincibleFrames returns the remaining grace window, in ticks.
func (s *Soul) InvincibleFrames() int { return s.invincibleFrames }

// GrantInvincibility opens (or extends) the post-hit grace window.
func (s *Soul) GrantInvincibility(frames int) {
	if s == nil || frames <= 0 {
		return
	}
	if frames > s.invincibleFrames {
		s.invincibleFrames = frames
	}
}

// Alpha is the render opacity: full normally, blinking while invincible.
func (s *Soul) Alpha() float64 {
	if !s.Invincible() {
		return 1
	}
	if (s.blinkFrame/4)%2 == 0 {
		return 0.35
	}
	return 1
}

// Trail returns the recent positions, oldest first. The slice is rebuilt
// per call; callers may retain it.
func (s *Soul) Trail() []cp.Vector {
	if s == nil || s.trailCount == 0 {
		return nil
	}
	out := make([]cp.Vector, 0, s.trailCount)
	start := (s.trailHead - s.trailCount + trailLen) % trailLen
	for i := 0; i < s.trailCount; i++ {
		out = append(out, s.trail[(start+i)%trailLen])
	}
	return out
}

// Bounds returns the soul's axis-aligned hitbox.
func (s *Soul) Bounds() cp.BB {
	return cp.NewBBForCircle(s.Pos, s.Size)
}

// Draw renders the trail and the soul square. Modes with extra visuals
// (the shield panel) draw on top via DrawOverlay.
func (s *Soul) Draw(dst *ebiten.Image) {
	if s == nil || dst == nil {
		return
	}
	for i, p := range s.Trail() {
		a := 0.25 * float64(i+1) / float64(s.trailCount)
		half := s.Size * 0.5
		vector.FillRect(dst, float32(p.X-half), float32(p.Y-half), float32(half*2), float32(half*2), fadeColor(s.Col, a), false)
	}
	vector.FillRect(dst,
		float32(s.Pos.X-s.Size), float32(s.Pos.Y-s.Size),
		float32(s.Size*2), float32(s.Size*2),
		fadeColor(s.Col, s.Alpha()), false)
	if o, ok := s.mode.(overlayDrawer); ok {
		o.DrawOverlay(s, dst)
	}
}

type overlayDrawer interface {
	DrawOverlay(s *Soul, dst *ebiten.Image)
}

func fadeColor(c color.RGBA, alpha float64) color.RGBA {
	a := common.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * a)),
		G: uint8(math.Round(float64(c.G) * a)),
		B: uint8(math.Round(float64(c.B) * a)),
		A: uint8(math.Round(255 * a)),
	}
}

// clampToArena keeps the soul fully inside the box, inset by its size.
func clampToArena(s *Soul, arena cp.BB) {
	s.Pos.X = common.Clamp(s.Pos.X, arena.L+s.Size, arena.R-s.Size)
	s.Pos.Y = common.Clamp(s.Pos.Y, arena.B+s.Size, arena.T-s.Size)
}
