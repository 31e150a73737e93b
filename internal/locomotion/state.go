package locomotion

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// never marks a timestamp that has not happened yet. It is far enough in the
// past that every coyote and cooldown comparison treats it as expired.
const never = time.Duration(math.MinInt64 / 2)

// Shape is the character's collision capsule pose.
type Shape struct {
	Height  float64
	CenterY float64
}

// State is the per-character locomotion record. It is owned by exactly one
// controller and mutated once per tick.
type State struct {
	// Velocity carries the vertical component across ticks. The horizontal
	// intent is recomputed every tick and is not stored here.
	Velocity mgl64.Vec3

	IsGrounded       bool
	LastGroundedTime time.Duration

	IsJumping    bool
	JumpTimer    time.Duration
	LastJumpTime time.Duration

	IsCrouching  bool
	Shape        Shape
	DefaultShape Shape

	// Yaw accumulates without wraparound. Pitch stays within ±PitchLimit.
	Yaw        float64
	Pitch      float64
	CurrentFOV float64
}

// NewState captures initial as the standing pose.
func NewState(settings Settings, initial Shape) State {
	return State{
		LastGroundedTime: never,
		LastJumpTime:     never,
		Shape:            initial,
		DefaultShape:     initial,
		CurrentFOV:       settings.NormalFOV,
	}
}

// HasGrounded reports whether the character has touched ground at least once.
func (s State) HasGrounded() bool {
	return s.LastGroundedTime != never
}
