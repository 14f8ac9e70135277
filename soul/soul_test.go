package soul

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/input"
)

var testArena = cp.BB{L: 0, B: 0, R: 320, T: 240}

func TestNormalDiagonalSpeedNormalized(t *testing.T) {
	s := New(160, 120)
	s.Speed = 2

	s.Update(&input.State{MoveX: 1, MoveY: 1}, testArena)

	moved := s.Pos.Distance(cp.Vector{X: 160, Y: 120})
	if math.Abs(moved-2) > 1e-9 {
		t.Fatalf("diagonal step length = %v, want 2", moved)
	}
}

func TestNormalClampsToArena(t *testing.T) {
	s := New(310, 120)
	s.Speed = 50

	for i := 0; i < 5; i++ {
		s.Update(&input.State{MoveX: 1}, testArena)
	}
	if want := testArena.R - s.Size; s.Pos.X != want {
		t.Fatalf("clamped x = %v, want %v", s.Pos.X, want)
	}
}

func TestIsMovingRefreshesPerTick(t *testing.T) {
	s := New(160, 120)

	s.Update(&input.State{MoveX: 1}, testArena)
	if !s.IsMoving() {
		t.Fatal("moving tick reported stationary")
	}
	s.Update(&input.State{}, testArena)
	if s.IsMoving() {
		t.Fatal("stationary tick reported moving")
	}
}

func TestInvincibilityCountsDown(t *testing.T) {
	s := New(160, 120)
	s.GrantInvincibility(3)
	if !s.Invincible() {
		t.Fatal("not invincible after grant")
	}

	// a shorter re-grant must not cut the window
	s.GrantInvincibility(1)
	if got := s.InvincibleFrames(); got != 3 {
		t.Fatalf("frames after shorter re-grant = %d, want 3", got)
	}

	for i := 0; i < 3; i++ {
		s.Update(&input.State{}, testArena)
	}
	if s.Invincible() {
		t.Fatal("still invincible after window elapsed")
	}
	if s.Alpha() != 1 {
		t.Fatalf("alpha = %v, want 1 when not invincible", s.Alpha())
	}
}

func TestModeSwitchRunsHooks(t *testing.T) {
	s := New(100, 100)
	sh := &Shield{}
	s.SetMode(sh)

	if s.Mode() != sh {
		t.Fatal("mode not swapped")
	}
	if sh.ArcWidth != math.Pi/2 {
		t.Fatalf("enter hook default arc = %v, want pi/2", sh.ArcWidth)
	}
}

func TestShieldLocksCenterAndBlocks(t *testing.T) {
	s := New(10, 10)
	sh := &Shield{}
	s.SetMode(sh)

	s.Update(&input.State{MoveX: 1}, testArena)
	if s.Pos.X != 160 || s.Pos.Y != 120 {
		t.Fatalf("pos = %v, want arena center {160 120}", s.Pos)
	}
	// aiming right
	if !sh.Blocks(0) {
		t.Fatal("dead-ahead attack not blocked")
	}
	if !sh.Blocks(math.Pi / 4) {
		t.Fatal("edge-of-arc attack not blocked")
	}
	if sh.Blocks(math.Pi) {
		t.Fatal("attack behind the shield blocked")
	}

	// aim up, which is -Y in screen coordinates
	s.Update(&input.State{MoveY: -1}, testArena)
	if !sh.Blocks(-math.Pi / 2) {
		t.Fatal("upward attack not blocked after aiming up")
	}
	if sh.Blocks(math.Pi / 2) {
		t.Fatal("downward attack blocked while aiming up")
	}
}

func TestGravityLandsOnFloor(t *testing.T) {
	s := New(160, 120)
	g := &Gravity{}
	s.SetMode(g)

	for i := 0; i < 120; i++ {
		s.Update(&input.State{}, testArena)
	}
	if want := testArena.T - s.Size; s.Pos.Y != want {
		t.Fatalf("rest y = %v, want floor %v", s.Pos.Y, want)
	}
	if !g.Grounded() {
		t.Fatal("not grounded at rest")
	}
}

func TestGravityJumpAndBufferedJump(t *testing.T) {
	s := New(160, 120)
	g := &Gravity{}
	s.SetMode(g)
	for i := 0; i < 120; i++ {
		s.Update(&input.State{}, testArena)
	}
	floor := testArena.T - s.Size

	s.Update(&input.State{JumpPressed: true}, testArena)
	if s.Pos.Y >= floor {
		t.Fatal("jump did not leave the floor")
	}

	// fall until just above the floor, press jump early, and expect the
	// buffer to fire the jump on touchdown
	for i := 0; i < 300 && !(g.velY > 0 && s.Pos.Y > floor-18); i++ {
		s.Update(&input.State{}, testArena)
	}
	s.Update(&input.State{JumpPressed: true}, testArena)
	launched := false
	for i := 0; i < 15; i++ {
		s.Update(&input.State{}, testArena)
		if g.velY < 0 {
			launched = true
			break
		}
	}
	if !launched {
		t.Fatal("buffered jump did not fire on touchdown")
	}
}

func TestGravityCoyoteJump(t *testing.T) {
	s := New(160, 120)
	g := &Gravity{}
	s.SetMode(g)
	for i := 0; i < 120; i++ {
		s.Update(&input.State{}, testArena)
	}

	// simulate leaving the ground without jumping by nudging the soul up
	s.Pos.Y -= 4
	s.Update(&input.State{}, testArena)
	if g.Grounded() {
		t.Fatal("expected airborne after nudge")
	}
	// still inside the coyote window, so a jump is honored
	before := s.Pos.Y
	s.Update(&input.State{JumpPressed: true}, testArena)
	s.Update(&input.State{}, testArena)
	if s.Pos.Y >= before {
		t.Fatal("coyote jump not honored")
	}
}

func TestRangedFireCooldown(t *testing.T) {
	var shots []cp.Vector
	s := New(160, 120)
	r := &Ranged{
		CooldownFrames: 5,
		Fire:           func(pos, dir cp.Vector) { shots = append(shots, dir) },
	}
	s.SetMode(r)

	// face right, then hold fire
	s.Update(&input.State{MoveX: 1, FirePressed: true}, testArena)
	for i := 0; i < 4; i++ {
		s.Update(&input.State{FirePressed: true}, testArena)
	}
	if len(shots) != 1 {
		t.Fatalf("shots during cooldown = %d, want 1", len(shots))
	}
	s.Update(&input.State{FirePressed: true}, testArena)
	if len(shots) != 2 {
		t.Fatalf("shots after cooldown = %d, want 2", len(shots))
	}
	if shots[0].X != 1 || shots[0].Y != 0 {
		t.Fatalf("aim = %v, want {1 0}", shots[0])
	}
}

func TestRailClampsAndSwitches(t *testing.T) {
	s := New(0, 0)
	r := &Rail{Lines: []RailLine{
		{From: cp.Vector{X: 0, Y: 100}, To: cp.Vector{X: 100, Y: 100}},
		{From: cp.Vector{X: 0, Y: 200}, To: cp.Vector{X: 100, Y: 200}},
	}}
	s.Speed = 10
	s.SetMode(r)

	if s.Pos.X != 0 || s.Pos.Y != 100 {
		t.Fatalf("enter snap pos = %v, want {0 100}", s.Pos)
	}

	for i := 0; i < 20; i++ {
		s.Update(&input.State{MoveX: 1}, testArena)
	}
	if r.Progress() != 1 {
		t.Fatalf("progress = %v, want clamped at 1", r.Progress())
	}
	if s.Pos.X != 100 || s.Pos.Y != 100 {
		t.Fatalf("end-of-line pos = %v, want {100 100}", s.Pos)
	}

	s.Update(&input.State{SwitchPressed: true}, testArena)
	if r.Line() != 1 {
		t.Fatalf("line after switch = %d, want 1", r.Line())
	}
	if s.Pos.Y != 200 {
		t.Fatalf("pos after switch = %v, want y=200 keeping progress", s.Pos)
	}

	for i := 0; i < 20; i++ {
		s.Update(&input.State{MoveX: -1}, testArena)
	}
	if r.Progress() != 0 {
		t.Fatalf("progress after walking back = %v, want 0", r.Progress())
	}
}

func TestTrailHoldsRecentPositions(t *testing.T) {
	s := New(160, 120)
	for i := 0; i < trailLen+5; i++ {
		s.Update(&input.State{MoveX: 1}, testArena)
	}
	trail := s.Trail()
	if len(trail) != trailLen {
		t.Fatalf("trail length = %d, want %d", len(trail), trailLen)
	}
	if got := trail[len(trail)-1]; got != s.Pos {
		t.Fatalf("newest trail entry = %v, want current pos %v", got, s.Pos)
	}
	for i := 1; i < len(trail); i++ {
		if trail[i].X < trail[i-1].X {
			t.Fatalf("trail not oldest-first at %d", i)
		}
	}
}
