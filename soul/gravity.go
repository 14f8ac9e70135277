package soul

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/battlebox/common"
	"github.com/milk9111/battlebox/input"
)

const (
	jumpBufferFrames = 10
	coyoteFrames     = 6

	defaultGravityAccel  = 0.5
	defaultJumpSpeed     = 7.5
	defaultTerminalSpeed = 10
)

// Gravity is platformer movement: horizontal input plus integrated
// gravity, with jump input buffering and coyote-time grace so a jump
// pressed slightly early or slightly after walking off the floor still
// lands.
type Gravity struct {
	// GravityAccel is added to vertical speed every tick, pixels/tick^2.
	GravityAccel float64
	// JumpSpeed is the upward launch speed, pixels/tick.
	JumpSpeed float64
	// TerminalSpeed caps downward speed.
	TerminalSpeed float64

	velY            float64
	grounded        bool
	jumpBuffer      bool
	jumpBufferTimer int
	coyoteTimer     int
}

func (Gravity) Name() string { return "gravity" }

func (m *Gravity) Enter(s *Soul) {
	if m.GravityAccel <= 0 {
		m.GravityAccel = defaultGravityAccel
	}
	if m.JumpSpeed <= 0 {
		m.JumpSpeed = defaultJumpSpeed
	}
	if m.TerminalSpeed <= 0 {
		m.TerminalSpeed = defaultTerminalSpeed
	}
	m.velY = 0
	m.jumpBuffer = false
	m.coyoteTimer = 0
}

func (m *Gravity) Exit(s *Soul) {}

// Grounded reports whether the soul rested on the floor last tick.
func (m *Gravity) Grounded() bool { return m.grounded }

func (m *Gravity) Update(s *Soul, in *input.State, arena cp.BB) {
	floor := arena.T - s.Size

	if in != nil {
		s.Pos.X += in.MoveX * s.Speed
		if in.JumpPressed {
			m.jumpBuffer = true
			m.jumpBufferTimer = jumpBufferFrames
		}
	}
	s.Pos.X = common.Clamp(s.Pos.X, arena.L+s.Size, arena.R-s.Size)

	if m.jumpBuffer {
		m.jumpBufferTimer--
		if m.jumpBufferTimer <= 0 {
			m.jumpBuffer = false
		}
	}

	// reset when grounded, count down for the grace window when airborne
	if m.grounded {
		m.coyoteTimer = coyoteFrames
	} else if m.coyoteTimer > 0 {
		m.coyoteTimer--
	}

	if m.jumpBuffer && (m.grounded || m.coyoteTimer > 0) {
		m.velY = -m.JumpSpeed
		m.jumpBuffer = false
		m.coyoteTimer = 0
		m.grounded = false
	}

	m.velY += m.GravityAccel
	if m.velY > m.TerminalSpeed {
		m.velY = m.TerminalSpeed
	}
	s.Pos.Y += m.velY

	if s.Pos.Y >= floor {
		s.Pos.Y = floor
		m.velY = 0
		m.grounded = true
	} else {
		m.grounded = false
	}
	if s.Pos.Y < arena.B+s.Size {
		s.Pos.Y = arena.B + s.Size
		if m.velY < 0 {
			m.velY = 0
		}
	}
}
