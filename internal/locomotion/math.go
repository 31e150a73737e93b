package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-12

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldDown    = mgl64.Vec3{0, -1, 0}
	worldForward = mgl64.Vec3{0, 0, 1}
	worldRight   = mgl64.Vec3{1, 0, 0}
)

// projectOnPlane removes the component of v along normal. A degenerate
// normal leaves v untouched.
func projectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	n2 := normal.LenSqr()
	if n2 < epsilon {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / n2))
}

func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// angleBetween returns the unsigned angle between a and b in degrees.
func angleBetween(a, b mgl64.Vec3) float64 {
	denom := math.Sqrt(a.LenSqr() * b.LenSqr())
	if denom < epsilon {
		return 0
	}
	cos := mgl64.Clamp(a.Dot(b)/denom, -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// lerp interpolates from a to b with t clamped to [0,1].
func lerp(a, b, t float64) float64 {
	return a + (b-a)*mgl64.Clamp(t, 0, 1)
}

func facing(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(yaw), worldUp)
}

// directions returns the horizontal forward and right vectors for a yaw in
// degrees. Yaw 0 faces +Z and positive yaw turns toward +X.
func directions(yaw float64) (forward, right mgl64.Vec3) {
	q := facing(yaw)
	return q.Rotate(worldForward), q.Rotate(worldRight)
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return mgl64.Clamp(v, -1, 1)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

