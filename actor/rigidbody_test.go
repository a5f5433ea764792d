package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Transform Tests
// =============================================================================

func TestTransform_Axes(t *testing.T) {
	// 90° around X: local up becomes world +Z, local forward becomes world -Y
	transform := NewTransformAt(mgl64.Vec3{}, mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{1, 0, 0}))

	if !vec3AlmostEqual(transform.Up(), mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("Up() = %v, want {0 0 1}", transform.Up())
	}
	if !vec3AlmostEqual(transform.Forward(), mgl64.Vec3{0, -1, 0}, 1e-9) {
		t.Errorf("Forward() = %v, want {0 -1 0}", transform.Forward())
	}
	if !vec3AlmostEqual(transform.Right(), mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("Right() = %v, want {1 0 0}", transform.Right())
	}
}

func TestTransform_PointRoundTrip(t *testing.T) {
	transform := NewTransformAt(
		mgl64.Vec3{1, 2, 3},
		mgl64.QuatRotate(mgl64.DegToRad(37), mgl64.Vec3{1, 1, 0}.Normalize()),
	)
	local := mgl64.Vec3{0.5, -0.25, 2}

	world := transform.TransformPoint(local)
	back := transform.InverseTransformPoint(world)

	if !vec3AlmostEqual(back, local, 1e-9) {
		t.Errorf("InverseTransformPoint(TransformPoint(p)) = %v, want %v", back, local)
	}
}

func TestTransform_LiteralWithoutInverse(t *testing.T) {
	transform := Transform{
		Position: mgl64.Vec3{0, 1, 0},
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0}),
	}

	local := transform.InverseTransformPoint(mgl64.Vec3{1, 1, 0})
	if !vec3AlmostEqual(local, mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("InverseTransformPoint() = %v, want {0 0 1}", local)
	}
}

// =============================================================================
// RigidBody Tests
// =============================================================================

func TestNewRigidBody(t *testing.T) {
	transform := NewTransformAt(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent())
	box := &Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}}

	rb := NewRigidBody(transform, box, BodyTypeKinematic, LayerGameplay)

	if rb.BodyType != BodyTypeKinematic {
		t.Errorf("BodyType = %v, want BodyTypeKinematic", rb.BodyType)
	}
	if !vec3AlmostEqual(rb.PreviousTransform.Position, transform.Position, 1e-10) {
		t.Errorf("PreviousTransform.Position = %v, want %v", rb.PreviousTransform.Position, transform.Position)
	}
	if !rb.Layer.Has(LayerGameplay) {
		t.Error("Layer should carry LayerGameplay")
	}

	// AABB must be computed at construction
	if !vec3AlmostEqual(box.GetAABB().Min, mgl64.Vec3{0.5, 1.5, 2.5}, 1e-10) {
		t.Errorf("AABB.Min = %v, want {0.5 1.5 2.5}", box.GetAABB().Min)
	}
}

func TestRigidBody_Integrate(t *testing.T) {
	tests := []struct {
		name     string
		bodyType BodyType
		velocity mgl64.Vec3
		dt       float64
		want     mgl64.Vec3
	}{
		{"kinematic moves", BodyTypeKinematic, mgl64.Vec3{5, 0, 0}, 0.1, mgl64.Vec3{0.5, 0, 0}},
		{"kinematic at rest", BodyTypeKinematic, mgl64.Vec3{}, 0.1, mgl64.Vec3{}},
		{"static ignores velocity", BodyTypeStatic, mgl64.Vec3{5, 0, 0}, 0.1, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewRigidBody(NewTransform(), &Sphere{Radius: 0.1}, tt.bodyType, LayerDefault)
			rb.Velocity = tt.velocity

			predicted := rb.Predict(tt.dt)
			rb.Integrate(tt.dt)

			if !vec3AlmostEqual(rb.Transform.Position, tt.want, 1e-12) {
				t.Errorf("Position = %v, want %v", rb.Transform.Position, tt.want)
			}
			if !vec3AlmostEqual(predicted, tt.want, 1e-12) {
				t.Errorf("Predict() = %v, want %v", predicted, tt.want)
			}
		})
	}
}

func TestRigidBody_IntegrateKeepsPrevious(t *testing.T) {
	rb := NewRigidBody(NewTransformAt(mgl64.Vec3{1, 0, 0}, mgl64.QuatIdent()), &Sphere{Radius: 0.1}, BodyTypeKinematic, LayerDefault)
	rb.Velocity = mgl64.Vec3{0, -2, 0}

	rb.Integrate(0.5)

	if !vec3AlmostEqual(rb.PreviousTransform.Position, mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("PreviousTransform.Position = %v, want {1 0 0}", rb.PreviousTransform.Position)
	}
	if !vec3AlmostEqual(rb.Transform.Position, mgl64.Vec3{1, -1, 0}, 1e-12) {
		t.Errorf("Transform.Position = %v, want {1 -1 0}", rb.Transform.Position)
	}
}

func TestRigidBody_TeleportAndStop(t *testing.T) {
	sphere := &Sphere{Radius: 1}
	rb := NewRigidBody(NewTransform(), sphere, BodyTypeKinematic, LayerDefault)
	rb.Velocity = mgl64.Vec3{1, 1, 1}

	rb.Teleport(mgl64.Vec3{4, 0, 0})
	rb.Stop()

	if rb.Velocity != (mgl64.Vec3{}) {
		t.Errorf("Velocity = %v, want zero", rb.Velocity)
	}
	if !vec3AlmostEqual(rb.PreviousTransform.Position, mgl64.Vec3{4, 0, 0}, 1e-12) {
		t.Errorf("PreviousTransform.Position = %v, want {4 0 0}", rb.PreviousTransform.Position)
	}
	if !vec3AlmostEqual(sphere.GetAABB().Center(), mgl64.Vec3{4, 0, 0}, 1e-12) {
		t.Errorf("AABB center = %v, want {4 0 0}", sphere.GetAABB().Center())
	}
}

func TestLayer(t *testing.T) {
	layer := LayerDefault.With(LayerGameplay)

	if !layer.Has(LayerGameplay) || !layer.Has(LayerDefault) {
		t.Errorf("Layer %b should carry default and gameplay", layer)
	}
	if layer.Has(LayerDraggable) {
		t.Errorf("Layer %b should not be draggable", layer)
	}
}

// Helper function to compare floats with epsilon tolerance
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// Helper function to compare Vec3 with epsilon tolerance
func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}
