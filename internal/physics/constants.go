package physics

const (
	// StepHeight is the tallest ledge the mover climbs without blocking.
	StepHeight = 0.3
	// GroundSnapDistance keeps a grounded character attached when walking
	// down a ramp faster than it falls.
	GroundSnapDistance = 0.3
	// ContactSkin lifts probe origins so a character resting exactly on a
	// surface still hits it.
	ContactSkin = 0.01

	CollisionAxisTolerance = 1e-9
)
