package locomotion

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/repeale/fp-go/option"
)

var ErrNilGround = errors.New("locomotion: ground is nil")

// MoverCommand is what the physics mover should do this tick.
type MoverCommand struct {
	// Move is the horizontal intent in units per second. While sliding it is
	// the slide vector, tangent to the slope.
	Move mgl64.Vec3
	// Velocity is the carried velocity after jump and gravity.
	Velocity mgl64.Vec3
	// Displacement is (Move + Velocity) * dt.
	Displacement mgl64.Vec3

	// Shape is the capsule pose. ShapeChanged is set only on the tick the
	// pose flips, and the mover must apply it before moving.
	Shape        Shape
	ShapeChanged bool

	Sliding bool
	Jumped  bool
}

// CameraCommand carries absolute orientation and FOV for the renderer.
type CameraCommand struct {
	Yaw           float64
	Facing        mgl64.Quat
	Pitch         float64
	LocalRotation mgl64.Quat
	FOV           float64
}

// Step advances st by one tick. It does not retain ground or mutate
// anything outside the returned values, so a tick can be replayed against
// a fake Ground.
//
// Movement uses the facing from the previous tick; look input is applied
// last and shows up in the returned camera command.
func Step(st State, in Input, settings Settings, ground Ground) (State, MoverCommand, CameraCommand) {
	dt := in.DT.Seconds()

	updateGrounded(&st, ground.IsGrounded(), in.Now, settings)

	speed := settings.WalkSpeed
	if in.Sprint {
		speed = settings.SprintSpeed
	}
	speed, shapeChanged := updateCrouch(&st, in.Crouch, settings, speed)

	forward, right := directions(st.Yaw)
	intent := forward.Mul(clampAxis(in.Forward)).Add(right.Mul(clampAxis(in.Right)))
	move := intent.Mul(speed)
	if !st.IsGrounded {
		move = move.Mul(settings.AirControlFactor)
	}

	sliding := false
	if st.IsGrounded {
		if contact := probeSteepSlope(ground, st.Shape.Height, settings); opt.IsSome(contact) {
			move = resolveSlide(intent, speed, contact.Value, settings)
			sliding = true
		}
	}

	jumped := updateJump(&st, in, settings)
	applyGravity(&st, dt, settings)

	cmd := MoverCommand{
		Move:         move,
		Velocity:     st.Velocity,
		Displacement: move.Add(st.Velocity).Mul(dt),
		Shape:        st.Shape,
		ShapeChanged: shapeChanged,
		Sliding:      sliding,
		Jumped:       jumped,
	}

	updateLook(&st, in, settings)
	return st, cmd, cameraCommand(st)
}

func cameraCommand(st State) CameraCommand {
	return CameraCommand{
		Yaw:           st.Yaw,
		Facing:        facing(st.Yaw),
		Pitch:         st.Pitch,
		LocalRotation: cameraRotation(st.Pitch),
		FOV:           st.CurrentFOV,
	}
}

// Controller binds a State to its Settings and Ground for hosts that call
// it once per tick. It is not safe for concurrent use.
type Controller struct {
	settings Settings
	ground   Ground
	state    State
}

func New(settings Settings, ground Ground, initial Shape) (*Controller, error) {
	if ground == nil {
		return nil, ErrNilGround
	}
	return &Controller{
		settings: settings,
		ground:   ground,
		state:    NewState(settings, initial),
	}, nil
}

func (c *Controller) Tick(in Input) (MoverCommand, CameraCommand) {
	var (
		mover  MoverCommand
		camera CameraCommand
	)
	c.state, mover, camera = Step(c.state, in, c.settings, c.ground)
	return mover, camera
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Settings() Settings {
	return c.settings
}

// Camera returns the camera command for the current state without ticking.
func (c *Controller) Camera() CameraCommand {
	return cameraCommand(c.state)
}
