package surface

import "github.com/go-gl/mathgl/mgl64"

// Contains reports whether the world point lies inside the plane's boundary polygon.
// The point is moved into the plane's local frame and its normal component is dropped.
// A nil plane or a boundary with fewer than 3 points contains nothing.
func Contains(point mgl64.Vec3, plane *Plane) bool {
	if !plane.Valid() {
		return false
	}

	local := plane.ToLocal(point)

	return ContainsLocal(mgl64.Vec2{local.X(), local.Z()}, plane.Boundary)
}

// ContainsLocal applies the even-odd rule to a point already expressed in boundary coordinates.
// Self-intersecting polygons are not rejected, and points exactly on a vertex or an edge are unspecified.
func ContainsLocal(point mgl64.Vec2, boundary []mgl64.Vec2) bool {
	count := len(boundary)
	if count < MinBoundaryPoints {
		return false
	}

	inside := false
	for i, j := 0, count-1; i < count; j, i = i, i+1 {
		pi := boundary[i]
		pj := boundary[j]

		// the edge straddles the horizontal ray, and crosses it right of the point
		if (pi.Y() > point.Y()) != (pj.Y() > point.Y()) &&
			point.X() < (pj.X()-pi.X())*(point.Y()-pi.Y())/(pj.Y()-pi.Y())+pi.X() {
			inside = !inside
		}
	}

	return inside
}

// Centroid returns the vertex average of a boundary, which lies inside any convex polygon
func Centroid(boundary []mgl64.Vec2) mgl64.Vec2 {
	if len(boundary) == 0 {
		return mgl64.Vec2{}
	}

	var sum mgl64.Vec2
	for _, p := range boundary {
		sum = sum.Add(p)
	}

	return sum.Mul(1 / float64(len(boundary)))
}
