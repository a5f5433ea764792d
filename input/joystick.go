// Package input turns virtual joystick gestures into per-tick movement samples.
package input

import "github.com/go-gl/mathgl/mgl64"

// Sample is one tick of player intent
type Sample struct {
	// Intent is the lateral direction, within the unit disc
	Intent mgl64.Vec2
	// Jump is edge-triggered: it is true for exactly one sample per press
	Jump bool
}

// Joystick is a virtual stick plus a jump button.
// The handle is expressed in the stick's own units and clamped to HandleRange.
type Joystick struct {
	HandleRange float64

	intent      mgl64.Vec2
	handle      mgl64.Vec2
	jumpPressed bool
}

func NewJoystick(handleRange float64) *Joystick {
	return &Joystick{HandleRange: handleRange}
}

// Drag moves the handle to a position relative to the stick center
func (j *Joystick) Drag(position mgl64.Vec2) {
	if j.HandleRange <= 0 {
		return
	}

	if length := position.Len(); length > j.HandleRange {
		position = position.Mul(j.HandleRange / length)
	}
	j.handle = position
	j.intent = position.Mul(1 / j.HandleRange)
}

// Release recenters the handle
func (j *Joystick) Release() {
	j.handle = mgl64.Vec2{}
	j.intent = mgl64.Vec2{}
}

// SetIntent bypasses the handle and sets the normalized intent directly (keyboard, scripted input)
func (j *Joystick) SetIntent(intent mgl64.Vec2) {
	if length := intent.Len(); length > 1 {
		intent = intent.Mul(1 / length)
	}
	j.intent = intent
	j.handle = intent.Mul(j.HandleRange)
}

// PressJump records a jump press, consumed by the next Sample
func (j *Joystick) PressJump() {
	j.jumpPressed = true
}

// Handle returns the clamped handle offset, for drawing
func (j *Joystick) Handle() mgl64.Vec2 {
	return j.handle
}

func (j *Joystick) Horizontal() float64 {
	return j.intent.X()
}

func (j *Joystick) Vertical() float64 {
	return j.intent.Y()
}

// Sample returns the current intent and consumes the pending jump
func (j *Joystick) Sample() Sample {
	sample := Sample{Intent: j.intent, Jump: j.jumpPressed}
	j.jumpPressed = false

	return sample
}
