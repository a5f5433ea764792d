// Package surface models tracked planes and the geometry used to keep a body on them:
// polygon containment, projection onto a plane, the plane's local frame and a ground ray probe.
package surface

import (
	"encoding/binary"
	"math"

	"github.com/akmonengine/flatland/actor"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// MinBoundaryPoints is the smallest boundary considered a valid polygon
const MinBoundaryPoints = 3

// Plane is a tracked flat surface.
// Boundary points are expressed in the plane's local (x, z) coordinates; their order defines the winding.
type Plane struct {
	ID        uuid.UUID
	Transform actor.Transform
	// Center is the world-space center of the tracked area, it may differ from Transform.Position
	Center   mgl64.Vec3
	Boundary []mgl64.Vec2
	Revision uint64
}

// NewPlane creates a plane from its pose and boundary
func NewPlane(id uuid.UUID, transform actor.Transform, center mgl64.Vec3, boundary []mgl64.Vec2) *Plane {
	p := &Plane{
		ID:        id,
		Transform: transform,
		Center:    center,
	}
	p.SetBoundary(boundary)

	return p
}

// SetBoundary replaces the boundary in place and reports whether its content changed
func (p *Plane) SetBoundary(boundary []mgl64.Vec2) bool {
	p.Boundary = append(p.Boundary[:0], boundary...)

	revision := hashBoundary(p.Boundary)
	changed := revision != p.Revision
	p.Revision = revision

	return changed
}

// Valid reports whether the boundary can be used as a polygon
func (p *Plane) Valid() bool {
	return p != nil && len(p.Boundary) >= MinBoundaryPoints
}

// ToLocal maps a world point into the plane's local frame
func (p *Plane) ToLocal(world mgl64.Vec3) mgl64.Vec3 {
	return p.Transform.InverseTransformPoint(world)
}

// ToWorld maps a local point to world space
func (p *Plane) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return p.Transform.TransformPoint(local)
}

// BoundaryWorld returns the boundary as world-space points lying on the plane, e.g. for an outline
func (p *Plane) BoundaryWorld() []mgl64.Vec3 {
	points := make([]mgl64.Vec3, len(p.Boundary))
	for i, b := range p.Boundary {
		points[i] = p.ToWorld(mgl64.Vec3{b.X(), 0, b.Y()})
	}

	return points
}

func hashBoundary(boundary []mgl64.Vec2) uint64 {
	digest := xxhash.New()

	var buf [16]byte
	for _, point := range boundary {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(point.X()))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(point.Y()))
		_, _ = digest.Write(buf[:])
	}

	return digest.Sum64()
}
