package attack

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// Side names the arena edge a wall attack enters from.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// SideByName resolves side names from pattern specs.
func SideByName(name string) (Side, bool) {
	switch name {
	case "top":
		return SideTop, true
	case "bottom":
		return SideBottom, true
	case "left":
		return SideLeft, true
	case "right":
		return SideRight, true
	default:
		return SideTop, false
	}
}

// Gap is a hole in a wall: a normalized position along the wall axis and
// a size in pixels.
type Gap struct {
	Pos  float64 // 0..1 along the wall
	Size float64 // pixels
}

// WallAttack sweeps a full-width or full-height wall across the arena
// from one side to the opposite. Collision is "inside the wall slab but
// not fully inside any gap".
type WallAttack struct {
	Base

	Side      Side
	Thickness float64
	Gaps      []Gap

	arena   cp.BB
	haveBox bool
}

func NewWallAttack(side Side, speed, damage, thickness float64, gaps []Gap) *WallAttack {
	w := &WallAttack{
		Base:      NewBase(KindWall, 0, 0, 0, 0, damage),
		Side:      side,
		Thickness: thickness,
		Gaps:      gaps,
	}
	w.Col = color.RGBA{R: 0xcc, G: 0xcc, B: 0xff, A: 0xff}
	switch side {
	case SideTop:
		w.Vel = cp.Vector{Y: speed}
	case SideBottom:
		w.Vel = cp.Vector{Y: -speed}
	case SideLeft:
		w.Vel = cp.Vector{X: speed}
	case SideRight:
		w.Vel = cp.Vector{X: -speed}
	}
	return w
}

func (w *WallAttack) Update(env *Env) {
	if !w.Step() {
		return
	}
	if env != nil && !w.haveBox {
		w.place(env.Arena)
	}
	w.Move(env)
	if w.haveBox && w.crossed() {
		w.Deactivate()
	}
}

// place positions the wall just outside its entry side on first update.
func (w *WallAttack) place(arena cp.BB) {
	w.arena = arena
	w.haveBox = true
	half := w.Thickness / 2
	switch w.Side {
	case SideTop:
		w.Pos = cp.Vector{X: (arena.L + arena.R) / 2, Y: arena.B - half}
	case SideBottom:
		w.Pos = cp.Vector{X: (arena.L + arena.R) / 2, Y: arena.T + half}
	case SideLeft:
		w.Pos = cp.Vector{X: arena.L - half, Y: (arena.B + arena.T) / 2}
	case SideRight:
		w.Pos = cp.Vector{X: arena.R + half, Y: (arena.B + arena.T) / 2}
	}
}

func (w *WallAttack) crossed() bool {
	half := w.Thickness / 2
	switch w.Side {
	case SideTop:
		return w.Pos.Y-half > w.arena.T
	case SideBottom:
		return w.Pos.Y+half < w.arena.B
	case SideLeft:
		return w.Pos.X-half > w.arena.R
	default:
		return w.Pos.X+half < w.arena.L
	}
}

// horizontal reports whether the wall spans the arena width (moving
// vertically).
func (w *WallAttack) horizontal() bool {
	return w.Side == SideTop || w.Side == SideBottom
}

// CollidesWith tests the point-with-radius against the wall slab. A
// target whose whole extent lies inside a single gap passes through.
func (w *WallAttack) CollidesWith(p cp.Vector, radius float64) bool {
	if !w.CanDealDamage() || !w.haveBox {
		return false
	}
	half := w.Thickness / 2

	var sweep, axis, axisMin, axisMax float64
	if w.horizontal() {
		sweep, axis = p.Y, p.X
		axisMin, axisMax = w.arena.L, w.arena.R
	} else {
		sweep, axis = p.X, p.Y
		axisMin, axisMax = w.arena.B, w.arena.T
	}
	wallCoord := w.Pos.Y
	if !w.horizontal() {
		wallCoord = w.Pos.X
	}

	// Outside the slab in the sweep direction: no contact.
	if sweep+radius < wallCoord-half || sweep-radius > wallCoord+half {
		return false
	}

	// Fully inside any gap band: pass through.
	span := axisMax - axisMin
	for _, g := range w.Gaps {
		center := axisMin + g.Pos*span
		if axis-radius >= center-g.Size/2 && axis+radius <= center+g.Size/2 {
			return false
		}
	}
	return true
}

// Bounds covers the whole slab across the arena.
func (w *WallAttack) Bounds() cp.BB {
	if !w.haveBox {
		return w.Base.Bounds()
	}
	half := w.Thickness / 2
	if w.horizontal() {
		return cp.BB{L: w.arena.L, B: w.Pos.Y - half, R: w.arena.R, T: w.Pos.Y + half}
	}
	return cp.BB{L: w.Pos.X - half, B: w.arena.B, R: w.Pos.X + half, T: w.arena.T}
}

func (w *WallAttack) Draw(dst *ebiten.Image) {
	if !w.Active() || dst == nil || !w.haveBox {
		return
	}
	col := w.DrawColor()
	bb := w.Bounds()
	if w.horizontal() {
		span := w.arena.R - w.arena.L
		edges := w.gapEdges(w.arena.L, span)
		for i := 0; i+1 < len(edges); i += 2 {
			vector.FillRect(dst, float32(edges[i]), float32(bb.B), float32(edges[i+1]-edges[i]), float32(w.Thickness), col, false)
		}
		return
	}
	span := w.arena.T - w.arena.B
	edges := w.gapEdges(w.arena.B, span)
	for i := 0; i+1 < len(edges); i += 2 {
		vector.FillRect(dst, float32(bb.L), float32(edges[i]), float32(w.Thickness), float32(edges[i+1]-edges[i]), col, false)
	}
}

// gapEdges returns alternating start/end coordinates of the solid
// segments along the wall axis.
func (w *WallAttack) gapEdges(axisMin, span float64) []float64 {
	edges := []float64{axisMin}
	for _, g := range w.Gaps {
		center := axisMin + g.Pos*span
		edges = append(edges, center-g.Size/2, center+g.Size/2)
	}
	edges = append(edges, axisMin+span)
	return edges
}
