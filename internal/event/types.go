package event

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	EventJump  = "locomotion.jump"
	EventLand  = "locomotion.land"
	EventPose  = "locomotion.pose"
	EventSlide = "locomotion.slide"
)

// JumpEvent is published on the tick a jump is triggered.
type JumpEvent struct {
	At       time.Duration
	Position mgl64.Vec3
	Velocity float64
}

// LandEvent is published on the first grounded tick after being airborne.
type LandEvent struct {
	At       time.Duration
	Position mgl64.Vec3
	Airtime  time.Duration
}

type PoseEvent struct {
	At        time.Duration
	Crouching bool
	Height    float64
	CenterY   float64
}

// SlideEvent marks a change in sliding; Sliding is false when it ends.
type SlideEvent struct {
	At       time.Duration
	Sliding  bool
	Position mgl64.Vec3
}
