// Package input turns raw per-frame key levels into edge-aware controller
// input.
package input

import (
	"time"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/go-gl/mathgl/mgl64"
)

// Frame is the raw device state sampled once per tick.
type Frame struct {
	Forward float64 `yaml:"forward"`
	Right   float64 `yaml:"right"`
	Sprint  bool    `yaml:"sprint"`
	Crouch  bool    `yaml:"crouch"`
	Jump    bool    `yaml:"jump"`
	MouseX  float64 `yaml:"mouse_x"`
	MouseY  float64 `yaml:"mouse_y"`
}

// Tracker derives jump edges and the simulation clock. It keeps only the
// previous jump level, so each press yields exactly one down edge and one up
// edge.
type Tracker struct {
	now      time.Duration
	jumpHeld bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Next advances the clock by dt and converts f into controller input.
func (t *Tracker) Next(f Frame, dt time.Duration) locomotion.Input {
	t.now += dt
	jump := locomotion.Button{
		Down: f.Jump && !t.jumpHeld,
		Held: f.Jump,
		Up:   !f.Jump && t.jumpHeld,
	}
	t.jumpHeld = f.Jump

	return locomotion.Input{
		Forward:    f.Forward,
		Right:      f.Right,
		Sprint:     f.Sprint,
		Crouch:     f.Crouch,
		Jump:       jump,
		MouseDelta: mgl64.Vec2{f.MouseX, f.MouseY},
		DT:         dt,
		Now:        t.now,
	}
}

func (t *Tracker) Now() time.Duration {
	return t.now
}
