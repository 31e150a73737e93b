package body

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNilMover  = errors.New("body: mover is nil")
	ErrNilCamera = errors.New("body: camera is nil")
)

// Mover is the physics side of the character. *physics.Mover implements it.
type Mover interface {
	locomotion.Ground
	SetShape(shape locomotion.Shape)
	Shape() locomotion.Shape
	Move(displacement mgl64.Vec3) physics.MoveResult
	Position() mgl64.Vec3
	Teleport(pos mgl64.Vec3)
}

// Snapshot is the observable state of the body after a tick.
type Snapshot struct {
	Tick     uint64
	Now      time.Duration
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool

	Crouching bool
	Sliding   bool
	Jumped    bool
	Shape     locomotion.Shape

	Yaw   float64
	Pitch float64
	FOV   float64
}

// Body binds a locomotion controller to a mover and a camera. Each Tick
// samples input, runs the controller, applies its commands and publishes
// the resulting events.
type Body struct {
	mu         sync.Mutex
	controller *locomotion.Controller
	mover      Mover
	camera     Camera
	bus        *event.Bus
	tracker    *input.Tracker
	log        *slog.Logger

	tick       uint64
	grounded   bool
	airborneAt time.Duration
	sliding    bool
	last       Snapshot
}

// New builds a body around mover. The mover's current shape becomes the
// standing pose. bus may be nil; its handlers run inside Tick and must not
// call back into the body.
func New(settings locomotion.Settings, mover Mover, camera Camera, bus *event.Bus) (*Body, error) {
	if mover == nil {
		return nil, ErrNilMover
	}
	if camera == nil {
		return nil, ErrNilCamera
	}
	controller, err := locomotion.New(settings, mover, mover.Shape())
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}

	b := &Body{
		controller: controller,
		mover:      mover,
		camera:     camera,
		bus:        bus,
		tracker:    input.NewTracker(),
		log:        slog.With("component", "body"),
		grounded:   mover.IsGrounded(),
	}
	b.applyCamera(controller.Camera())
	b.last = b.snapshot(controller.State(), false, false)
	return b, nil
}

// Tick advances the body by dt using the raw frame f.
func (b *Body) Tick(f input.Frame, dt time.Duration) (Snapshot, error) {
	if b == nil {
		return Snapshot{}, fmt.Errorf("body is nil")
	}
	if dt <= 0 {
		return Snapshot{}, fmt.Errorf("tick: dt must be positive, got %s", dt)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	in := b.tracker.Next(f, dt)
	mover, camera := b.controller.Tick(in)
	b.tick++

	if mover.ShapeChanged {
		b.mover.SetShape(mover.Shape)
	}
	res := b.mover.Move(mover.Displacement)
	b.applyCamera(camera)

	st := b.controller.State()
	b.publish(in.Now, st, mover, res)

	b.last = b.snapshot(st, mover.Sliding, mover.Jumped)
	b.last.Grounded = res.Grounded
	return b.last, nil
}

// Teleport moves the character without simulating the path.
func (b *Body) Teleport(pos mgl64.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mover.Teleport(pos)
	b.last.Position = pos
	b.log.Info("Teleported", "pos", pos)
}

// Snapshot returns the state after the most recent tick.
func (b *Body) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *Body) applyCamera(c locomotion.CameraCommand) {
	b.camera.SetFacing(c.Facing)
	b.camera.SetLocalRotation(c.LocalRotation)
	b.camera.SetFieldOfView(c.FOV)
}

func (b *Body) publish(now time.Duration, st locomotion.State, cmd locomotion.MoverCommand, res physics.MoveResult) {
	pos := res.Position

	if cmd.Jumped {
		b.log.Debug("Jump", "tick", b.tick, "pos", pos, "vy", cmd.Velocity.Y())
		b.emit(event.EventJump, event.JumpEvent{At: now, Position: pos, Velocity: cmd.Velocity.Y()})
	}

	if cmd.ShapeChanged {
		b.log.Debug("Pose changed", "tick", b.tick, "crouching", st.IsCrouching, "height", cmd.Shape.Height)
		b.emit(event.EventPose, event.PoseEvent{
			At:        now,
			Crouching: st.IsCrouching,
			Height:    cmd.Shape.Height,
			CenterY:   cmd.Shape.CenterY,
		})
	}

	if cmd.Sliding != b.sliding {
		b.sliding = cmd.Sliding
		b.log.Debug("Slide", "tick", b.tick, "sliding", cmd.Sliding, "pos", pos)
		b.emit(event.EventSlide, event.SlideEvent{At: now, Sliding: cmd.Sliding, Position: pos})
	}

	switch {
	case b.grounded && !res.Grounded:
		b.airborneAt = now
	case !b.grounded && res.Grounded:
		airtime := now - b.airborneAt
		b.log.Debug("Landed", "tick", b.tick, "pos", pos, "airtime", airtime)
		b.emit(event.EventLand, event.LandEvent{At: now, Position: pos, Airtime: airtime})
	}
	b.grounded = res.Grounded
}

func (b *Body) emit(name string, evt any) {
	if b.bus != nil {
		b.bus.Publish(name, evt)
	}
}

func (b *Body) snapshot(st locomotion.State, sliding, jumped bool) Snapshot {
	return Snapshot{
		Tick:      b.tick,
		Now:       b.tracker.Now(),
		Position:  b.mover.Position(),
		Velocity:  st.Velocity,
		Grounded:  b.mover.IsGrounded(),
		Crouching: st.IsCrouching,
		Sliding:   sliding,
		Jumped:    jumped,
		Shape:     st.Shape,
		Yaw:       st.Yaw,
		Pitch:     st.Pitch,
		FOV:       st.CurrentFOV,
	}
}
