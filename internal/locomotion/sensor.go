package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/repeale/fp-go/option"
)

// Hit is a ray intersection reported by Ground.Probe.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// Ground is the collision capability the controller reads each tick. Both
// queries describe world state resolved by the previous tick's move.
type Ground interface {
	IsGrounded() bool
	// Probe casts a ray from the character origin.
	Probe(direction mgl64.Vec3, maxDistance float64) opt.Option[Hit]
}

// SlopeContact is the surface under the character and its angle from
// world-up in degrees.
type SlopeContact struct {
	Normal mgl64.Vec3
	Angle  float64
}

func (c SlopeContact) Steep(limit float64) bool {
	return c.Angle > limit
}

func probeLength(height float64, settings Settings) float64 {
	return height/2 + settings.ProbeExtraLength
}

func probeSlope(ground Ground, height float64, settings Settings) opt.Option[SlopeContact] {
	hit := ground.Probe(worldDown, probeLength(height, settings))
	if opt.IsNone(hit) {
		return opt.None[SlopeContact]()
	}
	n := hit.Value.Normal
	return opt.Some(SlopeContact{Normal: n, Angle: angleBetween(worldUp, n)})
}

// probeSteepSlope returns the contact only when it is steeper than the
// climb limit. A miss is never an error, just no slope.
func probeSteepSlope(ground Ground, height float64, settings Settings) opt.Option[SlopeContact] {
	contact := probeSlope(ground, height, settings)
	if opt.IsNone(contact) || !contact.Value.Steep(settings.MaxClimbAngle) {
		return opt.None[SlopeContact]()
	}
	return contact
}
