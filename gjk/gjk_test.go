package gjk

import (
	"math"
	"testing"

	"github.com/akmonengine/flatland/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func boxBody(position, halfExtents mgl64.Vec3, rotation mgl64.Quat) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.NewTransformAt(position, rotation),
		&actor.Box{HalfExtents: halfExtents},
		actor.BodyTypeKinematic,
		actor.LayerGameplay,
	)
}

func sphereBody(position mgl64.Vec3, radius float64) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.NewTransformAt(position, mgl64.QuatIdent()),
		&actor.Sphere{Radius: radius},
		actor.BodyTypeStatic,
		actor.LayerGameplay,
	)
}

// ========== minkowski ==========

func TestMinkowski(t *testing.T) {
	a := sphereBody(mgl64.Vec3{0, 0, 0}, 1)
	b := sphereBody(mgl64.Vec3{3, 0, 0}, 1)

	// max(A.x) - min(B.x) = 1 - 2
	support := minkowski(a, b, mgl64.Vec3{1, 0, 0})
	if math.Abs(support.X()+1) > 1e-12 {
		t.Errorf("minkowski().X = %v, want -1", support.X())
	}
}

func TestBodySupport(t *testing.T) {
	box := boxBody(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.5, 0.25, 0.1}, mgl64.QuatIdent())

	got := box.Support(mgl64.Vec3{1, -1, 1})
	want := mgl64.Vec3{1.5, 1.75, 3.1}
	if !got.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("Support() = %v, want %v", got, want)
	}
}

// ========== Intersects ==========

func TestIntersects(t *testing.T) {
	turned := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})

	tests := []struct {
		name string
		a, b Convex
		want bool
	}{
		{
			"overlapping spheres",
			sphereBody(mgl64.Vec3{0, 0, 0}, 1),
			sphereBody(mgl64.Vec3{1, 0, 0}, 1),
			true,
		},
		{
			"separated spheres",
			sphereBody(mgl64.Vec3{0, 0, 0}, 1),
			sphereBody(mgl64.Vec3{3, 0, 0}, 1),
			false,
		},
		{
			"concentric",
			sphereBody(mgl64.Vec3{0, 0, 0}, 1),
			boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent()),
			true,
		},
		{
			"overlapping boxes",
			boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent()),
			boxBody(mgl64.Vec3{1, 0.5, 0.2}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent()),
			true,
		},
		{
			"separated boxes",
			boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent()),
			boxBody(mgl64.Vec3{0, 0, 2.5}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent()),
			false,
		},
		{
			"sphere inside box",
			boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.25, 0.25, 0.05}, mgl64.QuatIdent()),
			sphereBody(mgl64.Vec3{0.1, 0, 0}, 0.05),
			true,
		},
		{
			// the AABB of the turned box contains the sphere, the box does not
			"sphere beside a turned box corner",
			boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, turned),
			sphereBody(mgl64.Vec3{1, 0, 1}, 0.1),
			false,
		},
		{
			"sphere on a turned box corner",
			boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, turned),
			sphereBody(mgl64.Vec3{1.3, 0, 0}, 0.2),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.a, tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := Intersects(tt.b, tt.a); got != tt.want {
				t.Errorf("Intersects() swapped = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersects_AABBOverlapIsNotEnough(t *testing.T) {
	box := boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0}))
	sphere := sphereBody(mgl64.Vec3{1, 0, 1}, 0.1)

	if !box.Shape.GetAABB().Overlaps(sphere.Shape.GetAABB()) {
		t.Fatal("AABBs should overlap")
	}
	if Intersects(box, sphere) {
		t.Error("Intersects() = true, the sphere sits outside the turned box")
	}
}

// ========== simplex ==========

func TestSimplex_LineTowardOrigin(t *testing.T) {
	var s simplex
	s.set(mgl64.Vec3{1, 1, 0}, mgl64.Vec3{-1, 1, 0})

	var direction mgl64.Vec3
	if s.reduce(&direction) {
		t.Fatal("a segment cannot enclose the origin")
	}
	if s.count != 2 {
		t.Errorf("count = %d, want 2", s.count)
	}
	// perpendicular to the segment, pointing at the origin
	if direction.Y() >= 0 || math.Abs(direction.X()) > 1e-12 {
		t.Errorf("direction = %v, want along -Y", direction)
	}
}

func TestSimplex_TetrahedronEnclosingOrigin(t *testing.T) {
	var s simplex
	s.set(
		mgl64.Vec3{1, -1, -1},
		mgl64.Vec3{-1, -1, -1},
		mgl64.Vec3{0, -1, 1},
		mgl64.Vec3{0, 1, 0},
	)

	var direction mgl64.Vec3
	if !s.reduce(&direction) {
		t.Error("tetrahedron around the origin should report containment")
	}
}

func TestSimplex_TetrahedronBesideOrigin(t *testing.T) {
	var s simplex
	s.set(
		mgl64.Vec3{1, 1, 1},
		mgl64.Vec3{3, 1, 1},
		mgl64.Vec3{2, 1, 3},
		mgl64.Vec3{2, 3, 2},
	)

	var direction mgl64.Vec3
	if s.reduce(&direction) {
		t.Error("tetrahedron away from the origin should not report containment")
	}
	if s.count >= 4 {
		t.Errorf("count = %d, the simplex should drop a vertex", s.count)
	}
}
