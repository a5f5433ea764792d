package surface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ProjectOntoPlane removes the component of point along normal, measured from center,
// and re-adds offset along normal: the result lies exactly offset above the plane.
// normal must be normalized.
func ProjectOntoPlane(point, center, normal mgl64.Vec3, offset float64) mgl64.Vec3 {
	toPoint := point.Sub(center)
	distance := toPoint.Dot(normal)

	return point.Sub(normal.Mul(distance)).Add(normal.Mul(offset))
}

// Height returns the signed distance of point above the plane through center
func Height(point, center, normal mgl64.Vec3) float64 {
	return point.Sub(center).Dot(normal)
}

// LocalAxes returns the plane's up (normal), forward and right directions in world space
func LocalAxes(plane *Plane) (normal, forward, right mgl64.Vec3) {
	return plane.Transform.Up(), plane.Transform.Forward(), plane.Transform.Right()
}

// LookRotation builds the rotation whose +Z axis points along forward and whose +Y axis is as close as possible to up.
// When forward and up are parallel, an arbitrary perpendicular up is used.
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	f := forward.Normalize()

	r := up.Cross(f)
	if r.Len() < 1e-9 {
		r = tangent(f)
	}
	r = r.Normalize()
	u := f.Cross(r)

	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(r, u, f).Mat4()).Normalize()
}

// tangent returns any unit vector perpendicular to n
func tangent(n mgl64.Vec3) mgl64.Vec3 {
	var t mgl64.Vec3
	if math.Abs(n.X()) > 0.9 {
		t = mgl64.Vec3{0, 1, 0}
	} else {
		t = mgl64.Vec3{1, 0, 0}
	}

	return t.Sub(n.Mul(t.Dot(n))).Normalize()
}
