package attack

import "image/color"

// Kind tags used for collision-rule dispatch and damage events.
const (
	KindProjectile = "projectile"
	KindBlue       = "blue"
	KindOrange     = "orange"
	KindHoming     = "homing"
	KindBouncing   = "bouncing"
	KindExploding  = "exploding"
	KindFragment   = "fragment"
	KindArc        = "arc"
	KindWave       = "wave"
	KindBeam       = "beam"
	KindWall       = "wall"
	KindBlaster    = "blaster"
	KindSoulShot   = "soul_shot"
)

// Projectile is the plain constant-velocity attack with a rectangular
// hitbox. Bones and simple bullets are projectiles with different kinds.
type Projectile struct {
	Base
}

func NewProjectile(x, y, vx, vy, damage float64) *Projectile {
	return &Projectile{Base: NewBase(KindProjectile, x, y, vx, vy, damage)}
}

// SoulShot is the player's ranged-mode bullet. It carries no damage
// value; the battle layer collides it against enemy attacks instead of
// the soul.
type SoulShot struct {
	Base
}

func NewSoulShot(x, y, vx, vy float64) *SoulShot {
	s := &SoulShot{Base: NewBase(KindSoulShot, x, y, vx, vy, 0)}
	s.HitboxW = 8
	s.HitboxH = 8
	s.Col = color.RGBA{R: 0xff, G: 0xe0, B: 0x4d, A: 0xff}
	return s
}

// BlueProjectile damages the player only while they are moving.
type BlueProjectile struct {
	Base
}

func NewBlueProjectile(x, y, vx, vy, damage float64) *BlueProjectile {
	b := &BlueProjectile{Base: NewBase(KindBlue, x, y, vx, vy, damage)}
	b.Col = color.RGBA{R: 0x4d, G: 0x9c, B: 0xff, A: 0xff}
	return b
}

// ShouldDamage gates damage on the player moving this frame.
func (p *BlueProjectile) ShouldDamage(m MoverState) bool {
	return m != nil && m.IsMoving()
}

// OrangeProjectile damages the player only while they are stationary.
type OrangeProjectile struct {
	Base
}

func NewOrangeProjectile(x, y, vx, vy, damage float64) *OrangeProjectile {
	o := &OrangeProjectile{Base: NewBase(KindOrange, x, y, vx, vy, damage)}
	o.Col = color.RGBA{R: 0xff, G: 0xa5, B: 0x30, A: 0xff}
	return o
}

// ShouldDamage gates damage on the player holding still this frame.
func (p *OrangeProjectile) ShouldDamage(m MoverState) bool {
	return m != nil && !m.IsMoving()
}
