package locomotion

import "github.com/go-gl/mathgl/mgl64"

// slideDirection is world-down flattened onto the slope.
func slideDirection(normal mgl64.Vec3) mgl64.Vec3 {
	return normalizeOrZero(projectOnPlane(worldDown, normal))
}

// resolveSlide builds the horizontal move for a tick spent on a steep
// slope. It replaces the regular walk intent: the player only steers by
// PlayerInputInfluence, and the result is kept tangent to the surface.
func resolveSlide(intent mgl64.Vec3, speed float64, contact SlopeContact, settings Settings) mgl64.Vec3 {
	move := slideDirection(contact.Normal).Mul(settings.SlideForce).
		Add(intent.Mul(speed * settings.PlayerInputInfluence))
	return projectOnPlane(move, contact.Normal)
}
