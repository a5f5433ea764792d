// Package controller drives an agent glued to a tracked plane: gravity, jumps and grounding
// are computed along the plane's own normal, and lateral motion is confined to its boundary polygon.
package controller

import (
	"github.com/akmonengine/flatland/actor"
	"github.com/akmonengine/flatland/input"
	"github.com/akmonengine/flatland/surface"
	"github.com/go-gl/mathgl/mgl64"
)

// State of the controller
type State uint8

const (
	// StateDisabled runs no simulation
	StateDisabled State = iota
	// StateActive is normal play
	StateActive
	// StateLocked is terminal: input is ignored and the agent can only be dragged
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateActive:
		return "active"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Anchor gives access to the plane the agent lives on.
// Plane returns nil once the plane is gone; the controller then pauses.
type Anchor interface {
	Plane() *surface.Plane
}

// InputSource produces one sample per tick
type InputSource interface {
	Sample() input.Sample
}

// GroundProbe casts a ray of the given length and reports whether it hits ground
type GroundProbe interface {
	Grounded(plane *surface.Plane, origin, direction mgl64.Vec3, distance float64) bool
}

// GroundProbeFunc adapts a function to GroundProbe
type GroundProbeFunc func(plane *surface.Plane, origin, direction mgl64.Vec3, distance float64) bool

func (f GroundProbeFunc) Grounded(plane *surface.Plane, origin, direction mgl64.Vec3, distance float64) bool {
	return f(plane, origin, direction, distance)
}

// SurfaceProbe treats the plane's own polygon as the only ground
type SurfaceProbe struct{}

func (SurfaceProbe) Grounded(plane *surface.Plane, origin, direction mgl64.Vec3, distance float64) bool {
	_, hit := surface.Raycast(plane, origin, direction, distance)
	return hit
}

// Viewer exposes the gameplay camera pose, for camera-relative input
type Viewer interface {
	ViewTransform() actor.Transform
}

type Option func(*Controller)

func WithGroundProbe(probe GroundProbe) Option {
	return func(c *Controller) {
		c.probe = probe
	}
}

func WithViewer(viewer Viewer) Option {
	return func(c *Controller) {
		c.viewer = viewer
	}
}

// Controller is the plane-constrained body of the 2D agent
type Controller struct {
	Body   *actor.RigidBody
	Config Config

	anchor Anchor
	input  InputSource
	probe  GroundProbe
	viewer Viewer

	state     State
	draggable bool
	grounded  bool
}

// New creates a disabled controller for the body
func New(body *actor.RigidBody, config Config, options ...Option) *Controller {
	c := &Controller{
		Body:   body,
		Config: config,
		probe:  SurfaceProbe{},
		state:  StateDisabled,
	}
	for _, option := range options {
		option(c)
	}

	return c
}

// Initialize binds the controller to its plane and input, and starts the simulation.
// A locked controller stays locked.
func (c *Controller) Initialize(anchor Anchor, source InputSource) {
	if c.state == StateLocked {
		return
	}

	c.anchor = anchor
	c.input = source
	c.state = StateActive
}

// Disable stops the simulation without locking
func (c *Controller) Disable() {
	if c.state == StateActive {
		c.state = StateDisabled
	}
}

// Complete switches to the terminal locked state, where the agent becomes draggable.
// It reports whether the transition happened.
func (c *Controller) Complete() bool {
	if c.state != StateActive {
		return false
	}

	c.state = StateLocked
	c.draggable = true
	c.Body.Stop()
	c.Body.Layer = c.Body.Layer.With(actor.LayerDraggable)

	return true
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Grounded() bool {
	return c.grounded
}

func (c *Controller) Draggable() bool {
	return c.state == StateLocked && c.draggable
}

// Plane returns the current plane, or nil while paused
func (c *Controller) Plane() *surface.Plane {
	if c.anchor == nil {
		return nil
	}

	return c.anchor.Plane()
}

// Tick advances the simulation by one fixed step
func (c *Controller) Tick(dt float64) {
	if c.state != StateActive {
		return
	}
	plane := c.Plane()
	if plane == nil {
		return
	}

	normal, forward, right := surface.LocalAxes(plane)

	// 1. ground check, before reading input
	c.grounded = c.probe.Grounded(plane, c.Body.Transform.Position, normal.Mul(-1), c.Config.GroundCheckDistance)

	// 2. input
	velocity := c.applyInput(c.Body.Velocity, normal, forward, right)

	// 3. gravity / grounding, along the plane normal only
	velocity = c.applyGravity(velocity, normal, dt)

	// 4. commit, with a hard stop at the boundary
	c.Body.Velocity = velocity
	if !surface.Contains(c.Body.Predict(dt), plane) {
		c.Body.Stop()
	}
	c.Body.Integrate(dt)

	// 5. relock onto the surface
	c.relock(plane, normal)
}

func (c *Controller) applyInput(velocity, normal, forward, right mgl64.Vec3) mgl64.Vec3 {
	var sample input.Sample
	if c.input != nil {
		sample = c.input.Sample()
	}

	if c.grounded && sample.Jump {
		velocity = velocity.Add(normal.Mul(c.Config.JumpForce))
	}

	vertical := normal.Mul(velocity.Dot(normal))

	if c.Config.InputFrame == InputFrameCamera && c.viewer != nil {
		forward, right = c.screenAxes(normal, forward, right)
	}
	lateral := right.Mul(sample.Intent.X()).Add(forward.Mul(sample.Intent.Y())).Mul(c.Config.MoveSpeed)

	return vertical.Add(lateral)
}

func (c *Controller) applyGravity(velocity, normal mgl64.Vec3, dt float64) mgl64.Vec3 {
	if !c.grounded {
		return velocity.Sub(normal.Mul(c.Config.Gravity * dt))
	}

	// only the into-surface part is cancelled, so a jump from this tick survives
	if normalSpeed := velocity.Dot(normal); normalSpeed < 0 {
		velocity = velocity.Sub(normal.Mul(normalSpeed))
	}

	return velocity
}

// relock glues the body back at SurfaceOffset when it sank below it, or when it rests on the ground
func (c *Controller) relock(plane *surface.Plane, normal mgl64.Vec3) {
	position := c.Body.Transform.Position
	height := surface.Height(position, plane.Center, normal)
	normalSpeed := c.Body.Velocity.Dot(normal)

	if height >= c.Config.SurfaceOffset && !(c.grounded && normalSpeed <= 0) {
		return
	}

	c.Body.SetPosition(surface.ProjectOntoPlane(position, plane.Center, normal, c.Config.SurfaceOffset))
	if normalSpeed < 0 {
		c.Body.Velocity = c.Body.Velocity.Sub(normal.Mul(normalSpeed))
	}
}

// screenAxes flattens the camera's screen up/right onto the plane; degenerate axes keep the plane basis
func (c *Controller) screenAxes(normal, forward, right mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	view := c.viewer.ViewTransform()

	flatten := func(v, fallback mgl64.Vec3) mgl64.Vec3 {
		v = v.Sub(normal.Mul(v.Dot(normal)))
		if v.Len() < 1e-6 {
			return fallback
		}
		return v.Normalize()
	}

	screenUp := flatten(view.Up(), flatten(view.Forward(), forward))
	screenRight := flatten(view.Right(), right)

	return screenUp, screenRight
}

// Drag moves a locked agent to the target, kept on the plane at SurfaceOffset.
// It reports whether the agent moved.
func (c *Controller) Drag(target mgl64.Vec3) bool {
	if !c.Draggable() {
		return false
	}
	plane := c.Plane()
	if plane == nil {
		return false
	}

	normal := plane.Transform.Up()
	c.Body.Teleport(surface.ProjectOntoPlane(target, plane.Center, normal, c.Config.SurfaceOffset))

	return true
}
