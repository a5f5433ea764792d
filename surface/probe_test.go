package surface

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRaycast(t *testing.T) {
	plane := newTestPlane(mgl64.Vec3{}, mgl64.QuatIdent(), square(1))
	down := mgl64.Vec3{0, -1, 0}

	tests := []struct {
		name      string
		origin    mgl64.Vec3
		direction mgl64.Vec3
		max       float64
		wantHit   bool
		wantDist  float64
	}{
		{"short hit", mgl64.Vec3{0, 0.05, 0}, down, 0.1, true, 0.05},
		{"too far", mgl64.Vec3{0, 0.5, 0}, down, 0.1, false, 0},
		{"outside polygon", mgl64.Vec3{2, 0.05, 0}, down, 0.1, false, 0},
		{"pointing away", mgl64.Vec3{0, 0.05, 0}, mgl64.Vec3{0, 1, 0}, 0.1, false, 0},
		{"parallel", mgl64.Vec3{0, 0.05, 0}, mgl64.Vec3{1, 0, 0}, 10, false, 0},
		{"on the surface", mgl64.Vec3{0.5, 0, 0.5}, down, 0.1, true, 0},
		{"unnormalized direction", mgl64.Vec3{0, 0.05, 0}, mgl64.Vec3{0, -4, 0}, 0.1, true, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := Raycast(plane, tt.origin, tt.direction, tt.max)
			if hit != tt.wantHit {
				t.Fatalf("Raycast() hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && math.Abs(dist-tt.wantDist) > 1e-12 {
				t.Errorf("Raycast() distance = %v, want %v", dist, tt.wantDist)
			}
		})
	}
}

func TestRaycast_InvalidPlane(t *testing.T) {
	if _, hit := Raycast(nil, mgl64.Vec3{}, mgl64.Vec3{0, -1, 0}, 1); hit {
		t.Error("Raycast() on a nil plane should miss")
	}

	plane := newTestPlane(mgl64.Vec3{}, mgl64.QuatIdent(), []mgl64.Vec2{{0, 0}, {1, 1}})
	if _, hit := Raycast(plane, mgl64.Vec3{0, 0.05, 0}, mgl64.Vec3{0, -1, 0}, 1); hit {
		t.Error("Raycast() on a degenerate boundary should miss")
	}
}

func TestRaycast_Wall(t *testing.T) {
	// Wall whose normal is world +Z, standing at z = 3
	rotation := mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{1, 0, 0})
	plane := newTestPlane(mgl64.Vec3{0, 0, 3}, rotation, square(1))

	dist, hit := Raycast(plane, mgl64.Vec3{0.2, 0.3, 3.05}, plane.Transform.Up().Mul(-1), 0.1)
	if !hit {
		t.Fatal("Raycast() against the wall should hit")
	}
	if math.Abs(dist-0.05) > 1e-9 {
		t.Errorf("Raycast() distance = %v, want 0.05", dist)
	}
}
