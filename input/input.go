package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// State holds the input snapshot for one tick. The simulation only ever
// reads from a State polled at the top of the tick; no callback-driven
// input reaches it directly.
type State struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// MoveY is -1 for up, 0 for none, +1 for down.
	MoveY float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// JumpHeld is true while the jump key is held down.
	JumpHeld bool
	// ConfirmPressed is true on the frame the confirm key (Z/Enter) is pressed.
	ConfirmPressed bool
	// CancelPressed is true on the frame the cancel key (X/Escape) is pressed.
	CancelPressed bool
	// FirePressed is true on the frame the fire key is pressed (ranged mode).
	FirePressed bool
	// SwitchPressed is true on the frame the rail-switch key is pressed.
	SwitchPressed bool
}

// Input polls the keyboard and gamepad once per tick.
type Input struct {
	state State
}

func New() *Input {
	return &Input{}
}

// Update polls devices and refreshes the snapshot. Call exactly once per
// tick, before any simulation step.
func (i *Input) Update() {
	var s State

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		s.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		s.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		s.MoveY += 1
	}

	s.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	s.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace)
	s.ConfirmPressed = inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	s.CancelPressed = inpututil.IsKeyJustPressed(ebiten.KeyX) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	s.FirePressed = ebiten.IsKeyPressed(ebiten.KeyZ)
	s.SwitchPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft)

	// Gamepad: left stick for movement, primary button for jump/confirm.
	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -0.3 {
			s.MoveX = -1
		} else if lx > 0.3 {
			s.MoveX = 1
		}
		if ly < -0.3 {
			s.MoveY = -1
		} else if ly > 0.3 {
			s.MoveY = 1
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			s.JumpPressed = true
			s.ConfirmPressed = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			s.JumpHeld = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight) {
			s.CancelPressed = true
		}
	}

	i.state = s
}

// State returns the snapshot from the most recent Update.
func (i *Input) State() *State {
	return &i.state
}

// IsAnyPressed reports whether any key in the set is currently held.
func IsAnyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
