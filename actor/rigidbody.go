package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeKinematic bodies are moved by their controller through Velocity
	// They ignore world gravity: the controller applies gravity in its own frame
	BodyTypeKinematic BodyType = iota

	// BodyTypeStatic bodies never move (e.g., collectibles, goals)
	BodyTypeStatic
)

// RigidBody represents a body of the simulation
// No contact response is computed: bodies only integrate their velocity and expose a collider for overlap queries.
type RigidBody struct {
	// Spatial properties
	PreviousTransform Transform
	Transform         Transform

	// Linear motion
	Velocity mgl64.Vec3 // Linear velocity (m/s)

	BodyType BodyType
	Layer    Layer

	// Collider shape
	Shape ShapeInterface

	// Id is free for the owner, to map a body back to its entity
	Id any
}

// NewRigidBody creates a new rigid body with the given properties
func NewRigidBody(transform Transform, shape ShapeInterface, bodyType BodyType, layer Layer) *RigidBody {
	rb := &RigidBody{
		PreviousTransform: transform,
		Transform:         transform,
		Shape:             shape,
		BodyType:          bodyType,
		Layer:             layer,
		Velocity:          mgl64.Vec3{0, 0, 0},
	}
	rb.Shape.ComputeAABB(rb.Transform)

	return rb
}

// Integrate moves the body along its velocity for dt seconds
func (rb *RigidBody) Integrate(dt float64) {
	if rb.BodyType == BodyTypeStatic {
		return
	}

	rb.PreviousTransform.Position = rb.Transform.Position
	rb.PreviousTransform.Rotation = rb.Transform.Rotation
	rb.PreviousTransform.InverseRotation = rb.Transform.InverseRotation

	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))
	rb.Shape.ComputeAABB(rb.Transform)
}

// Predict returns the position the body would reach after dt seconds, without moving it
func (rb *RigidBody) Predict(dt float64) mgl64.Vec3 {
	if rb.BodyType == BodyTypeStatic {
		return rb.Transform.Position
	}

	return rb.Transform.Position.Add(rb.Velocity.Mul(dt))
}

// Teleport places the body without integrating, keeping the previous pose coherent
func (rb *RigidBody) Teleport(position mgl64.Vec3) {
	rb.PreviousTransform.Position = position
	rb.Transform.Position = position
	rb.Shape.ComputeAABB(rb.Transform)
}

// SetPosition moves the body after integration (e.g. a correction), keeping PreviousTransform untouched
func (rb *RigidBody) SetPosition(position mgl64.Vec3) {
	rb.Transform.Position = position
	rb.Shape.ComputeAABB(rb.Transform)
}

// Stop clears the velocity
func (rb *RigidBody) Stop() {
	rb.Velocity = mgl64.Vec3{}
}

// Center is the world position of the collider
func (rb *RigidBody) Center() mgl64.Vec3 {
	return rb.Transform.Position
}

// Support returns the furthest world point of the collider along a world direction
func (rb *RigidBody) Support(direction mgl64.Vec3) mgl64.Vec3 {
	local := rb.Shape.Support(rb.Transform.inverse().Rotate(direction))

	return rb.Transform.TransformPoint(local)
}
