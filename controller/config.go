package controller

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// InputFrame selects the basis the joystick intent is expressed in
type InputFrame uint8

const (
	// InputFramePlane maps intent.X to the plane's right axis and intent.Y to its forward axis
	InputFramePlane InputFrame = iota
	// InputFrameCamera maps intent to the gameplay camera's screen axes, flattened onto the plane
	InputFrameCamera
)

func (f InputFrame) String() string {
	switch f {
	case InputFramePlane:
		return "plane"
	case InputFrameCamera:
		return "camera"
	default:
		return fmt.Sprintf("InputFrame(%d)", uint8(f))
	}
}

func (f InputFrame) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *InputFrame) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "plane":
		*f = InputFramePlane
	case "camera":
		*f = InputFrameCamera
	default:
		return fmt.Errorf("unknown input frame %q", text)
	}

	return nil
}

// Config holds the agent tuning, all distances in meters and speeds in m/s
type Config struct {
	MoveSpeed           float64    `toml:"move-speed"`
	JumpForce           float64    `toml:"jump-force"`
	Gravity             float64    `toml:"gravity"`
	GroundCheckDistance float64    `toml:"ground-check-distance"`
	SurfaceOffset       float64    `toml:"surface-offset"`
	InputFrame          InputFrame `toml:"input-frame"`
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:           5,
		JumpForce:           8,
		Gravity:             20,
		GroundCheckDistance: 0.1,
		SurfaceOffset:       0.05,
		InputFrame:          InputFramePlane,
	}
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var err error

	if c.MoveSpeed < 0 {
		err = multierr.Append(err, fmt.Errorf("move-speed must be >= 0, got %v", c.MoveSpeed))
	}
	if c.JumpForce < 0 {
		err = multierr.Append(err, fmt.Errorf("jump-force must be >= 0, got %v", c.JumpForce))
	}
	if c.Gravity < 0 {
		err = multierr.Append(err, fmt.Errorf("gravity must be >= 0, got %v", c.Gravity))
	}
	if c.GroundCheckDistance <= 0 {
		err = multierr.Append(err, fmt.Errorf("ground-check-distance must be > 0, got %v", c.GroundCheckDistance))
	}
	if c.SurfaceOffset < 0 {
		err = multierr.Append(err, fmt.Errorf("surface-offset must be >= 0, got %v", c.SurfaceOffset))
	}
	// the agent resting at the offset must see the ground, or it never becomes grounded
	if c.SurfaceOffset >= c.GroundCheckDistance && c.GroundCheckDistance > 0 {
		err = multierr.Append(err, errors.New("surface-offset must be smaller than ground-check-distance"))
	}
	if c.InputFrame > InputFrameCamera {
		err = multierr.Append(err, fmt.Errorf("unknown input frame %v", c.InputFrame))
	}

	return err
}
