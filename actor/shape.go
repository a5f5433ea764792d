package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collider shape
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeBox
)

// ShapeInterface is the interface that all collider shapes must implement.
// Colliders are only used for overlap queries: no contact response is computed.
type ShapeInterface interface {
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	Type() ShapeType
	// Support returns the furthest point of the shape along a local direction
	Support(direction mgl64.Vec3) mgl64.Vec3
}

// Box represents an oriented box collider
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

func (b *Box) Type() ShapeType {
	return ShapeTypeBox
}

// Corners returns the 8 corners of the box in local space
func (b *Box) Corners() [8]mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	return [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}
}

func (b *Box) ComputeAABB(transform Transform) {
	corners := b.Corners()

	min := transform.TransformPoint(corners[0])
	max := min
	for _, corner := range corners[1:] {
		world := transform.TransformPoint(corner)
		for axis := 0; axis < 3; axis++ {
			min[axis] = math.Min(min[axis], world[axis])
			max[axis] = math.Max(max[axis], world[axis])
		}
	}

	b.aabb = AABB{Min: min, Max: max}
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	var point mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		point[axis] = b.HalfExtents[axis]
		if direction[axis] < 0 {
			point[axis] = -point[axis]
		}
	}

	return point
}

// Sphere represents a spherical collider, used for collectibles
type Sphere struct {
	Radius float64
	aabb   AABB
}

func (s *Sphere) Type() ShapeType {
	return ShapeTypeSphere
}

// ComputeAABB calculates the axis-aligned bounding box for the sphere
func (s *Sphere) ComputeAABB(transform Transform) {
	// Sphere AABB is not affected by rotation, only by position
	s.aabb = NewAABB(transform.Position, mgl64.Vec3{s.Radius, s.Radius, s.Radius})
}

func (s *Sphere) GetAABB() AABB {
	return s.aabb
}

func (s *Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	if direction.LenSqr() < 1e-16 {
		return mgl64.Vec3{s.Radius, 0, 0}
	}

	return direction.Normalize().Mul(s.Radius)
}
