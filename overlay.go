package flatland

import (
	"github.com/akmonengine/flatland/actor"
	"github.com/akmonengine/flatland/controller"
	"github.com/akmonengine/flatland/surface"
	"github.com/google/uuid"
)

// Overlay is the interactive context attached to one tracked plane.
// Camera, Level and Agent are only set while the gameplay runs on it.
type Overlay struct {
	ID     uuid.UUID
	Camera *Camera
	Level  *LevelInstance
	Agent  *controller.Controller
	Fade   Fade

	plane  *surface.Plane
	active bool
}

func newOverlay(plane *surface.Plane) *Overlay {
	return &Overlay{
		ID:    plane.ID,
		plane: plane,
	}
}

// Plane returns the tracked plane, or nil once the tracking dropped it
func (o *Overlay) Plane() *surface.Plane {
	if o == nil {
		return nil
	}

	return o.plane
}

// Active reports whether the gameplay runs on this overlay
func (o *Overlay) Active() bool {
	return o != nil && o.active
}

// ViewTransform is the gameplay camera pose, or the plane pose before the camera exists
func (o *Overlay) ViewTransform() actor.Transform {
	if o.Camera != nil {
		return o.Camera.ViewTransform()
	}
	if o.plane != nil {
		return o.plane.Transform
	}

	return actor.NewTransform()
}

// detach cuts the overlay from its plane; an agent on it pauses
func (o *Overlay) detach() {
	o.plane = nil
}

// teardown releases the gameplay objects
func (o *Overlay) teardown() {
	if o.Agent != nil {
		o.Agent.Disable()
	}
	o.Agent = nil
	o.Camera = nil
	o.Level = nil
	o.active = false
}
