// Package gjk tests two convex colliders for overlap with the Gilbert-Johnson-Keerthi algorithm.
//
// Two shapes overlap when their Minkowski difference A - B contains the origin. The difference is
// never built: a simplex of at most 4 of its support points is grown toward the origin, and the
// search stops as soon as a support point fails to pass it.
package gjk

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Convex is any collider able to report its furthest point along a world direction
type Convex interface {
	Center() mgl64.Vec3
	Support(direction mgl64.Vec3) mgl64.Vec3
}

const maxIterations = 32

// simplex keeps the most recent support point last
type simplex struct {
	points [4]mgl64.Vec3
	count  int
}

func (s *simplex) set(points ...mgl64.Vec3) {
	s.count = copy(s.points[:], points)
}

func (s *simplex) push(point mgl64.Vec3) {
	s.points[s.count] = point
	s.count++
}

// minkowski is the support point of A - B along direction
func minkowski(a, b Convex, direction mgl64.Vec3) mgl64.Vec3 {
	return a.Support(direction).Sub(b.Support(direction.Mul(-1)))
}

// Intersects reports whether a and b overlap. Shapes exactly touching may report either way.
func Intersects(a, b Convex) bool {
	direction := b.Center().Sub(a.Center())
	if direction.LenSqr() < 1e-8 {
		direction = mgl64.Vec3{1, 0, 0}
	}

	var s simplex
	s.set(minkowski(a, b, direction))

	direction = s.points[0].Mul(-1)
	if direction.LenSqr() < 1e-16 {
		return true
	}

	for i := 0; i < maxIterations; i++ {
		point := minkowski(a, b, direction)
		if point.Dot(direction) <= 0 {
			return false
		}

		s.push(point)
		if s.reduce(&direction) {
			return true
		}
	}

	return false
}

// reduce keeps the feature of the simplex closest to the origin and aims direction at it.
// Only a tetrahedron can enclose the origin.
func (s *simplex) reduce(direction *mgl64.Vec3) bool {
	switch s.count {
	case 2:
		return s.line(direction)
	case 3:
		return s.triangle(direction)
	case 4:
		return s.tetrahedron(direction)
	}

	return false
}

func (s *simplex) line(direction *mgl64.Vec3) bool {
	a, b := s.points[1], s.points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < 1e-8 || ab.Dot(ao) <= 0 {
		if ao.LenSqr() < 1e-8 {
			return true
		}
		s.set(a)
		*direction = ao
		return false
	}

	perp := ab.Cross(ao).Cross(ab)
	// origin on the segment
	if perp.LenSqr() < 1e-10*ab.LenSqr()*ab.LenSqr() {
		return true
	}

	*direction = perp
	return false
}

func (s *simplex) triangle(direction *mgl64.Vec3) bool {
	a, b, c := s.points[2], s.points[1], s.points[0]
	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	normal := ab.Cross(ac)
	if normal.LenSqr() < 1e-10 {
		s.set(b, a)
		return s.line(direction)
	}

	if ab.Cross(normal).Dot(ao) > 0 {
		s.set(b, a)
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}
	if normal.Cross(ac).Dot(ao) > 0 {
		s.set(c, a)
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if normal.Dot(ao) > 0 {
		*direction = normal
	} else {
		*direction = normal.Mul(-1)
	}

	return false
}

func (s *simplex) tetrahedron(direction *mgl64.Vec3) bool {
	a, b, c, d := s.points[3], s.points[2], s.points[1], s.points[0]
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	// each face normal is turned away from the vertex it does not contain
	faces := [3]struct {
		normal   mgl64.Vec3
		opposite mgl64.Vec3
		keep     [3]mgl64.Vec3
	}{
		{ab.Cross(ac), ad, [3]mgl64.Vec3{c, b, a}},
		{ac.Cross(ad), ab, [3]mgl64.Vec3{d, c, a}},
		{ad.Cross(ab), ac, [3]mgl64.Vec3{b, d, a}},
	}

	for i := range faces {
		if faces[i].normal.LenSqr() < 1e-10 {
			s.set(c, b, a)
			return s.triangle(direction)
		}
		if faces[i].normal.Dot(faces[i].opposite) > 0 {
			faces[i].normal = faces[i].normal.Mul(-1)
		}
	}

	for _, face := range faces {
		if face.normal.Dot(ao) > 0 {
			s.set(face.keep[:]...)
			return s.triangle(direction)
		}
	}

	return true
}
