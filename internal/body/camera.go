package body

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera receives absolute camera values once per tick. Facing is the body's
// rotation about world up; LocalRotation is the camera pitch relative to it.
type Camera interface {
	SetFacing(q mgl64.Quat)
	SetLocalRotation(q mgl64.Quat)
	SetFieldOfView(fov float64)
}

// CameraRig is a Camera that only remembers the last values written. Hosts
// without a renderer use it to report what would have been drawn.
type CameraRig struct {
	mu            sync.Mutex
	facing        mgl64.Quat
	localRotation mgl64.Quat
	fov           float64
}

func NewCameraRig() *CameraRig {
	return &CameraRig{
		facing:        mgl64.QuatIdent(),
		localRotation: mgl64.QuatIdent(),
	}
}

func (c *CameraRig) SetFacing(q mgl64.Quat) {
	c.mu.Lock()
	c.facing = q
	c.mu.Unlock()
}

func (c *CameraRig) SetLocalRotation(q mgl64.Quat) {
	c.mu.Lock()
	c.localRotation = q
	c.mu.Unlock()
}

func (c *CameraRig) SetFieldOfView(fov float64) {
	c.mu.Lock()
	c.fov = fov
	c.mu.Unlock()
}

// LookDirection is the world-space view direction.
func (c *CameraRig) LookDirection() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing.Mul(c.localRotation).Rotate(mgl64.Vec3{0, 0, 1})
}

func (c *CameraRig) FieldOfView() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}
