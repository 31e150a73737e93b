package locomotion

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Button is an edge-aware button reading. Down fires on the press tick, Up
// on the release tick, and Held covers the whole interval in between.
type Button struct {
	Down bool
	Held bool
	Up   bool
}

// Input is one tick of player input as produced by the input adapter.
type Input struct {
	// Forward and Right are movement axes in [-1, 1].
	Forward float64
	Right   float64

	Sprint bool
	Crouch bool
	Jump   Button

	MouseDelta mgl64.Vec2

	// DT is the time elapsed since the previous tick and Now is the
	// monotonic simulation time of this tick.
	DT  time.Duration
	Now time.Duration
}
