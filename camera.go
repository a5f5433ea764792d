package flatland

import (
	"math"

	"github.com/akmonengine/flatland/actor"
	"github.com/akmonengine/flatland/surface"
	"github.com/go-gl/mathgl/mgl64"
)

type CameraConfig struct {
	// Height above the plane center
	Height float64 `toml:"height"`
	// Size is the orthographic half height of the view
	Size float64 `toml:"size"`
	Near float64 `toml:"near"`
	Far  float64 `toml:"far"`
	// Depth orders the gameplay camera above the AR camera
	Depth int `toml:"depth"`
}

// Camera is the orthographic camera looking straight down at a plane.
// Its screen up is the plane's forward axis.
type Camera struct {
	Transform actor.Transform
	Size      float64
	Near      float64
	Far       float64
	Depth     int
	// CullingMask restricts rendering to gameplay bodies
	CullingMask actor.Layer
}

func NewTopDownCamera(plane *surface.Plane, config CameraConfig) *Camera {
	c := &Camera{
		Size:        config.Size,
		Near:        config.Near,
		Far:         config.Far,
		Depth:       config.Depth,
		CullingMask: actor.LayerGameplay,
	}
	c.Follow(plane, config.Height)

	return c
}

// Follow re-aims the camera at the plane, after the tracking refined its pose
func (c *Camera) Follow(plane *surface.Plane, height float64) {
	if plane == nil {
		return
	}

	up, forward, _ := surface.LocalAxes(plane)
	c.Transform = actor.NewTransformAt(
		plane.Center.Add(up.Mul(height)),
		surface.LookRotation(up.Mul(-1), forward),
	)
}

// ViewTransform exposes the camera pose for camera-relative input
func (c *Camera) ViewTransform() actor.Transform {
	return c.Transform
}

// ToView maps a world point to the camera's screen plane (x right, y up), in meters
func (c *Camera) ToView(world mgl64.Vec3) mgl64.Vec2 {
	local := c.Transform.InverseTransformPoint(world)
	return mgl64.Vec2{local.X(), local.Y()}
}

// Visible reports whether a world point falls inside the view volume, for a square viewport
func (c *Camera) Visible(world mgl64.Vec3) bool {
	local := c.Transform.InverseTransformPoint(world)

	return math.Abs(local.X()) <= c.Size && math.Abs(local.Y()) <= c.Size &&
		local.Z() >= c.Near && local.Z() <= c.Far
}

// Renders reports whether the camera draws a body with the given layer
func (c *Camera) Renders(layer actor.Layer) bool {
	return layer&c.CullingMask != 0
}
