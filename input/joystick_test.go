package input

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestJoystick_Drag(t *testing.T) {
	tests := []struct {
		name       string
		position   mgl64.Vec2
		wantIntent mgl64.Vec2
		wantHandle mgl64.Vec2
	}{
		{"center", mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}},
		{"half right", mgl64.Vec2{25, 0}, mgl64.Vec2{0.5, 0}, mgl64.Vec2{25, 0}},
		{"full up", mgl64.Vec2{0, 50}, mgl64.Vec2{0, 1}, mgl64.Vec2{0, 50}},
		{"clamped", mgl64.Vec2{0, -200}, mgl64.Vec2{0, -1}, mgl64.Vec2{0, -50}},
		{"clamped diagonal", mgl64.Vec2{300, 400}, mgl64.Vec2{0.6, 0.8}, mgl64.Vec2{30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewJoystick(50)
			j.Drag(tt.position)

			sample := j.Sample()
			if !sample.Intent.ApproxEqualThreshold(tt.wantIntent, 1e-12) {
				t.Errorf("Intent = %v, want %v", sample.Intent, tt.wantIntent)
			}
			if !j.Handle().ApproxEqualThreshold(tt.wantHandle, 1e-9) {
				t.Errorf("Handle = %v, want %v", j.Handle(), tt.wantHandle)
			}
			if sample.Intent.Len() > 1+1e-12 {
				t.Errorf("Intent %v escapes the unit disc", sample.Intent)
			}
		})
	}
}

func TestJoystick_Release(t *testing.T) {
	j := NewJoystick(50)
	j.Drag(mgl64.Vec2{10, 10})
	j.Release()

	if j.Horizontal() != 0 || j.Vertical() != 0 {
		t.Errorf("intent after release = (%v, %v), want zero", j.Horizontal(), j.Vertical())
	}
}

func TestJoystick_JumpReadOnce(t *testing.T) {
	j := NewJoystick(50)
	j.PressJump()

	if !j.Sample().Jump {
		t.Fatal("first sample after a press should jump")
	}
	for i := 0; i < 3; i++ {
		if j.Sample().Jump {
			t.Fatalf("sample %d should not jump again", i+2)
		}
	}

	// holding the stick does not affect the jump edge
	j.SetIntent(mgl64.Vec2{1, 0})
	j.PressJump()
	j.PressJump()
	first, second := j.Sample(), j.Sample()
	if !first.Jump || second.Jump {
		t.Errorf("double press should still yield one jump, got %v then %v", first.Jump, second.Jump)
	}
}

func TestJoystick_SetIntentNormalizes(t *testing.T) {
	j := NewJoystick(50)
	j.SetIntent(mgl64.Vec2{3, 4})

	if math.Abs(j.Horizontal()-0.6) > 1e-12 || math.Abs(j.Vertical()-0.8) > 1e-12 {
		t.Errorf("intent = (%v, %v), want (0.6, 0.8)", j.Horizontal(), j.Vertical())
	}
}
