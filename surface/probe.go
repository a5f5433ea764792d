package surface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Raycast intersects a ray with the plane's polygon surface.
// It returns the distance along direction to the hit point, and false when the ray misses,
// runs parallel to the plane, or hits beyond maxDistance.
func Raycast(plane *Plane, origin, direction mgl64.Vec3, maxDistance float64) (float64, bool) {
	if !plane.Valid() {
		return 0, false
	}

	dir := direction.Normalize()
	normal := plane.Transform.Up()

	denom := dir.Dot(normal)
	if math.Abs(denom) < 1e-9 {
		return 0, false
	}

	distance := plane.Center.Sub(origin).Dot(normal) / denom
	if distance < 0 || distance > maxDistance {
		return 0, false
	}

	hit := origin.Add(dir.Mul(distance))
	if !Contains(hit, plane) {
		return 0, false
	}

	return distance, true
}
