package attack

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

type fakeMover struct {
	center cp.Vector
	radius float64
	moving bool
}

func (m *fakeMover) Center() cp.Vector { return m.center }
func (m *fakeMover) Radius() float64   { return m.radius }
func (m *fakeMover) IsMoving() bool    { return m.moving }

func TestBlueOrangeDamageGates(t *testing.T) {
	blue := NewBlueProjectile(0, 0, 1, 0, 1)
	orange := NewOrangeProjectile(0, 0, 1, 0, 1)
	cases := []struct {
		name       string
		moving     bool
		wantBlue   bool
		wantOrange bool
	}{
		{"moving", true, true, false},
		{"stationary", false, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := &fakeMover{moving: c.moving}
			if got := blue.ShouldDamage(m); got != c.wantBlue {
				t.Fatalf("blue ShouldDamage = %v, want %v", got, c.wantBlue)
			}
			if got := orange.ShouldDamage(m); got != c.wantOrange {
				t.Fatalf("orange ShouldDamage = %v, want %v", got, c.wantOrange)
			}
		})
	}
}

func TestBouncingDeactivatesAfterMaxBouncesNoLoss(t *testing.T) {
	env := testEnv()
	p := NewBouncingProjectile(300, 120, 8, 0, 1, 2, 0)
	startSpeed := p.Vel.Length()

	speeds := []float64{}
	p.OnBounce = func(bounce int) {
		speeds = append(speeds, p.Vel.Length())
	}

	frames := 0
	for p.Active() && frames < 10000 {
		p.Update(env)
		frames++
	}
	if p.Active() {
		t.Fatalf("projectile still active after %d frames", frames)
	}
	if p.Bounces() != 2 {
		t.Fatalf("bounces = %d, want exactly 2", p.Bounces())
	}
	for i, s := range speeds {
		if math.Abs(s-startSpeed) > 1e-9 {
			t.Fatalf("bounce %d changed speed: %v, want %v", i+1, s, startSpeed)
		}
	}
}

func TestBouncingEnergyLoss(t *testing.T) {
	env := testEnv()
	p := NewBouncingProjectile(300, 120, 8, 0, 1, 0, 0.5)
	p.MinSpeed = 1
	frames := 0
	for p.Active() && frames < 10000 {
		p.Update(env)
		frames++
	}
	if p.Active() {
		t.Fatalf("lossy bouncer never dropped below min speed")
	}
	if p.Vel.Length() >= 1 {
		t.Fatalf("deactivated at speed %v, want < 1", p.Vel.Length())
	}
}

func TestHomingTurnRateClamped(t *testing.T) {
	h := NewHomingProjectile(0, 0, 1, 0, 1, 0.05)
	env := testEnv()
	env.Target = cp.Vector{X: 0, Y: 100} // 90 degrees off heading
	before := h.Vel.ToAngle()
	h.Update(env)
	after := h.Vel.ToAngle()
	if turn := math.Abs(after - before); turn > 0.05+1e-9 {
		t.Fatalf("turned %v radians, max is 0.05", turn)
	}
	if after <= before {
		t.Fatalf("did not turn toward target")
	}
}

func TestHomingDelayAndZeroVectorGuard(t *testing.T) {
	h := NewHomingProjectile(0, 0, 1, 0, 1, 0.5)
	h.DelayFrames = 5
	env := testEnv()
	env.Target = cp.Vector{X: 0, Y: 100}
	for i := 0; i < 5; i++ {
		h.Update(env)
	}
	if h.Vel.Y != 0 {
		t.Fatalf("homing engaged during delay window")
	}

	// target exactly on top of the projectile: no turn this tick, no NaN
	env.Target = h.Pos
	h.Update(env)
	if math.IsNaN(h.Vel.X) || math.IsNaN(h.Vel.Y) {
		t.Fatalf("zero-length direction produced NaN velocity")
	}
}

func TestHomingAccelRamp(t *testing.T) {
	h := NewHomingProjectile(0, 120, 1, 0, 1, 0.2)
	h.Accel = 0.5
	h.MaxSpeed = 3
	env := testEnv()
	for i := 0; i < 20; i++ {
		h.Update(env)
	}
	if s := h.Vel.Length(); math.Abs(s-3) > 1e-9 {
		t.Fatalf("speed = %v, want capped at 3", s)
	}
}

func TestArcSolveLandsOnTarget(t *testing.T) {
	from := cp.Vector{X: 20, Y: 200}
	to := cp.Vector{X: 220, Y: 180}
	const frames = 40
	const gravity = 0.3

	v0 := SolveArcVelocity(from, to, frames, gravity)
	a := NewArcProjectile(from.X, from.Y, v0.X, v0.Y, 1, gravity)
	a.BoundsMargin = 1e6 // keep alive for the whole flight
	env := testEnv()
	for i := 0; i < frames; i++ {
		a.Update(env)
	}
	if d := a.Pos.Distance(to); d > 1e-6 {
		t.Fatalf("landed %v away from target", d)
	}
}

func TestArcPeakAndGroundCallbacks(t *testing.T) {
	env := testEnv()
	a := NewArcProjectile(160, 200, 0, -5, 1, 0.5)
	a.GroundBounce = true
	a.BounceDamping = 0.5
	a.MaxGroundBounces = 1

	peaks, grounds := 0, 0
	a.OnPeak = func() { peaks++ }
	a.OnGround = func(int) { grounds++ }

	for i := 0; a.Active() && i < 1000; i++ {
		a.Update(env)
	}
	if peaks == 0 {
		t.Fatalf("peak callback never fired")
	}
	if grounds != 1 {
		t.Fatalf("ground callbacks = %d, want 1", grounds)
	}
	if a.Active() {
		t.Fatalf("arc still active after max ground bounces")
	}
}

func TestWaveProjectilePhaseOffsetSync(t *testing.T) {
	mk := func(offset float64) *WaveProjectile {
		w := NewWaveProjectile(0, 120, 2, 0, 1, 20, 0.2)
		w.PhaseOffset = offset
		return w
	}
	a, b := mk(0), mk(math.Pi)
	env := testEnv()
	for i := 0; i < 10; i++ {
		a.Update(env)
		b.Update(env)
	}
	// opposite phase: perpendicular displacements mirror each other
	da := a.Pos.Y - 120
	db := b.Pos.Y - 120
	if math.Abs(da+db) > 1e-9 {
		t.Fatalf("offsets not mirrored: %v vs %v", da, db)
	}
	if math.Abs(da) < 1e-3 {
		t.Fatalf("no perpendicular displacement at all")
	}
}

func TestBeamCollision(t *testing.T) {
	origin := cp.Vector{X: 160, Y: 120}
	b := NewRotatingBeam(origin, 100, 0, 0.1, 1, 0, -1, 0)

	cases := []struct {
		name string
		p    cp.Vector
		want bool
	}{
		{"on_beam", cp.Vector{X: 220, Y: 120}, true},
		{"inside_safe_zone", cp.Vector{X: 170, Y: 120}, false},
		{"beyond_length", cp.Vector{X: 300, Y: 120}, false},
		{"off_axis", cp.Vector{X: 220, Y: 160}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := b.CollidesWith(c.p, 4); got != c.want {
				t.Fatalf("CollidesWith(%v) = %v, want %v", c.p, got, c.want)
			}
		})
	}
}

func TestBeamTelegraphDoesNotDamage(t *testing.T) {
	origin := cp.Vector{X: 160, Y: 120}
	b := NewRotatingBeam(origin, 100, 0, 0, 1, 10, 10, 5)
	onBeam := cp.Vector{X: 220, Y: 120}
	if b.CollidesWith(onBeam, 4) {
		t.Fatalf("telegraphing beam must not collide")
	}
	env := testEnv()
	for i := 0; i < 10; i++ {
		b.Update(env)
	}
	if !b.CollidesWith(onBeam, 4) {
		t.Fatalf("active beam must collide on its segment")
	}
}

func TestBeamClampReverses(t *testing.T) {
	b := NewRotatingBeam(cp.Vector{X: 160, Y: 120}, 100, 0, 0.2, 1, 0, -1, 0)
	b.Clamped = true
	b.ClampMin = -0.5
	b.ClampMax = 0.5
	env := testEnv()
	for i := 0; i < 500; i++ {
		b.Update(env)
		if b.Angle < b.ClampMin-1e-9 || b.Angle > b.ClampMax+1e-9 {
			t.Fatalf("angle %v escaped clamp range", b.Angle)
		}
	}
}

func TestWallGapProperty(t *testing.T) {
	env := testEnv() // arena 320x240
	w := NewWallAttack(SideLeft, 2, 1, 20, []Gap{{Pos: 0.5, Size: 80}})
	w.Update(env) // places the wall

	// march the wall to the middle of the arena
	for w.Pos.X < 160 {
		w.Update(env)
	}
	gapCenter := 120.0 // arena.B + 0.5 * 240
	soulRadius := 8.0

	cases := []struct {
		name string
		y    float64
		want bool
	}{
		{"centered_in_gap", gapCenter, false},
		{"inside_gap_band", gapCenter + 30, false},
		{"edge_still_inside", gapCenter + 40 - soulRadius, false},
		{"straddling_gap_edge", gapCenter + 40, true},
		{"outside_gap", gapCenter + 80, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := cp.Vector{X: w.Pos.X, Y: c.y}
			if got := w.CollidesWith(p, soulRadius); got != c.want {
				t.Fatalf("CollidesWith(y=%v) = %v, want %v", c.y, got, c.want)
			}
		})
	}
}

func TestWallDeactivatesAfterCrossing(t *testing.T) {
	env := testEnv()
	w := NewWallAttack(SideTop, 4, 1, 16, nil)
	frames := 0
	for w.Active() && frames < 10000 {
		w.Update(env)
		frames++
	}
	if w.Active() {
		t.Fatalf("wall never finished crossing the arena")
	}
}

func TestBlasterPhasesAndCollision(t *testing.T) {
	origin := cp.Vector{X: 160, Y: 0}
	target := cp.Vector{X: 160, Y: 200}
	g := NewGasterBlaster(origin, target, 3, 5, 5, 10, 5)
	env := testEnv()
	onBeam := cp.Vector{X: 160, Y: 100}

	advance := func(n int) {
		for i := 0; i < n; i++ {
			g.Update(env)
		}
	}

	if g.Phase() != BlasterAppear {
		t.Fatalf("initial phase = %v, want appear", g.Phase())
	}
	advance(5)
	if g.Phase() != BlasterCharge {
		t.Fatalf("phase = %v, want charge", g.Phase())
	}
	if g.CollidesWith(onBeam, 4) {
		t.Fatalf("charging blaster must not collide")
	}
	advance(5)
	if g.Phase() != BlasterFire {
		t.Fatalf("phase = %v, want fire", g.Phase())
	}
	if !g.CanDealDamage() {
		t.Fatalf("firing blaster must deal damage")
	}
	if !g.CollidesWith(onBeam, 4) {
		t.Fatalf("firing blaster must collide on its beam")
	}
	if g.CollidesWith(cp.Vector{X: 100, Y: 100}, 4) {
		t.Fatalf("collided off the beam line")
	}
	advance(10)
	if g.Phase() != BlasterFade {
		t.Fatalf("phase = %v, want fade", g.Phase())
	}
	if g.CollidesWith(onBeam, 4) {
		t.Fatalf("fading blaster must not collide")
	}
	advance(5)
	if g.Active() {
		t.Fatalf("blaster still active after fade")
	}
}

func TestExplodingFuseSpawnsFragments(t *testing.T) {
	e := NewExplodingProjectile(160, 120, 0, 0, 2, 5, 6, 3)
	env := testEnv()
	var spawned []Object
	env.Spawn = func(o Object) { spawned = append(spawned, o) }

	for i := 0; i < 5; i++ {
		e.Update(env)
	}
	if e.Active() {
		t.Fatalf("shell still active after fuse")
	}
	if !e.Exploded() {
		t.Fatalf("fuse did not detonate")
	}
	if len(spawned) != 6 {
		t.Fatalf("spawned %d fragments, want 6", len(spawned))
	}
	for _, o := range spawned {
		if o.Kind() != KindFragment {
			t.Fatalf("fragment kind = %q", o.Kind())
		}
		if o.Damage() != 2 {
			t.Fatalf("fragment damage = %v, want inherited 2", o.Damage())
		}
	}
}

func TestExplodingChainReaction(t *testing.T) {
	a := NewExplodingProjectile(100, 120, 0, 0, 1, 3, 2, 2)
	b := NewExplodingProjectile(130, 120, 0, 0, 1, 1000, 2, 2)
	far := NewExplodingProjectile(300, 120, 0, 0, 1, 1000, 2, 2)
	a.ChainRadius = 50
	b.ChainRadius = 50
	far.ChainRadius = 50

	env := testEnv()
	env.Pool = []Object{a, b, far}
	env.Spawn = func(Object) {}

	for i := 0; i < 3; i++ {
		a.Update(env)
		b.Update(env)
		far.Update(env)
	}
	if !a.Exploded() {
		t.Fatalf("fuse projectile did not explode")
	}
	if !b.Exploded() {
		t.Fatalf("chained projectile inside radius did not explode")
	}
	if far.Exploded() {
		t.Fatalf("projectile outside chain radius exploded")
	}
}

func TestExplodingContactTrigger(t *testing.T) {
	e := NewExplodingProjectile(160, 120, 0, 0, 1, 0, 4, 2)
	e.ContactTrigger = true
	env := testEnv()
	n := 0
	env.Spawn = func(Object) { n++ }
	e.NotifyContact(env)
	if !e.Exploded() || n != 4 {
		t.Fatalf("contact trigger: exploded=%v fragments=%d", e.Exploded(), n)
	}
	// a second contact must be a no-op
	e.NotifyContact(env)
	if n != 4 {
		t.Fatalf("detonated twice")
	}
}

func TestFragmentAnglesUniform(t *testing.T) {
	e := NewExplodingProjectile(0, 0, 0, 0, 1, 1, 4, 1)
	angles := e.fragmentAngles()
	if len(angles) != 4 {
		t.Fatalf("got %d angles", len(angles))
	}
	for i, a := range angles {
		want := float64(i) * math.Pi / 2
		if math.Abs(a-want) > 1e-9 {
			t.Fatalf("angle[%d] = %v, want %v", i, a, want)
		}
	}
}
