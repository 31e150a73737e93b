package locomotion

import "time"

const (
	DefaultCameraSensitivity  = 2.0
	DefaultNormalFOV          = 75.0
	DefaultSprintFOV          = 90.0
	DefaultFOVTransitionSpeed = 5.0

	DefaultWalkSpeed   = 6.0
	DefaultSprintSpeed = 8.0
	DefaultCrouchSpeed = 2.5
	DefaultGravity     = -9.81

	DefaultMaxClimbAngle        = 40.0
	DefaultSlideForce           = 5.0
	DefaultPlayerInputInfluence = 0.5

	DefaultJumpHeight       = 1.0
	DefaultAirControlFactor = 0.5
	DefaultCrouchHeight     = 1.0

	// GroundedVerticalVelocity keeps a grounded character pressed into the
	// surface between ticks. Changing it alters how firmly the character
	// sticks to ground when walking off small steps.
	GroundedVerticalVelocity = -2.0

	// ProbeExtraLength is added to half the capsule height for the
	// downward slope probe.
	ProbeExtraLength = 0.5

	PitchLimit = 90.0
)

const (
	DefaultMaxJumpTime  = 500 * time.Millisecond
	DefaultCoyoteTime   = 200 * time.Millisecond
	DefaultJumpCooldown = 200 * time.Millisecond
)
