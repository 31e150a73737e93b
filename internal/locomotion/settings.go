package locomotion

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

// Settings holds the controller tunables. They are read-only once a
// Controller has been created.
type Settings struct {
	CameraSensitivity  float64
	InvertY            bool
	NormalFOV          float64
	SprintFOV          float64
	FOVTransitionSpeed float64

	WalkSpeed   float64
	SprintSpeed float64
	CrouchSpeed float64
	Gravity     float64

	// MaxClimbAngle is in degrees. Ground steeper than this makes the
	// character slide.
	MaxClimbAngle        float64
	SlideForce           float64
	PlayerInputInfluence float64

	JumpHeight       float64
	MaxJumpTime      time.Duration
	AirControlFactor float64
	CoyoteTime       time.Duration
	JumpCooldown     time.Duration

	CrouchHeight float64

	GroundedVerticalVelocity float64
	ProbeExtraLength         float64
}

func DefaultSettings() Settings {
	return Settings{
		CameraSensitivity:        DefaultCameraSensitivity,
		InvertY:                  true,
		NormalFOV:                DefaultNormalFOV,
		SprintFOV:                DefaultSprintFOV,
		FOVTransitionSpeed:       DefaultFOVTransitionSpeed,
		WalkSpeed:                DefaultWalkSpeed,
		SprintSpeed:              DefaultSprintSpeed,
		CrouchSpeed:              DefaultCrouchSpeed,
		Gravity:                  DefaultGravity,
		MaxClimbAngle:            DefaultMaxClimbAngle,
		SlideForce:               DefaultSlideForce,
		PlayerInputInfluence:     DefaultPlayerInputInfluence,
		JumpHeight:               DefaultJumpHeight,
		MaxJumpTime:              DefaultMaxJumpTime,
		AirControlFactor:         DefaultAirControlFactor,
		CoyoteTime:               DefaultCoyoteTime,
		JumpCooldown:             DefaultJumpCooldown,
		CrouchHeight:             DefaultCrouchHeight,
		GroundedVerticalVelocity: GroundedVerticalVelocity,
		ProbeExtraLength:         ProbeExtraLength,
	}
}

// Validate reports every tunable that is not finite or out of range, in
// field order. It is meant to run once at configuration time; Step never
// calls it.
func (s Settings) Validate() error {
	var errs []error

	floats := orderedmap.NewOrderedMap[string, float64]()
	floats.Set("camera_sensitivity", s.CameraSensitivity)
	floats.Set("normal_fov", s.NormalFOV)
	floats.Set("sprint_fov", s.SprintFOV)
	floats.Set("fov_transition_speed", s.FOVTransitionSpeed)
	floats.Set("walk_speed", s.WalkSpeed)
	floats.Set("sprint_speed", s.SprintSpeed)
	floats.Set("crouch_speed", s.CrouchSpeed)
	floats.Set("gravity", s.Gravity)
	floats.Set("max_climb_angle", s.MaxClimbAngle)
	floats.Set("slide_force", s.SlideForce)
	floats.Set("player_input_influence", s.PlayerInputInfluence)
	floats.Set("jump_height", s.JumpHeight)
	floats.Set("air_control_factor", s.AirControlFactor)
	floats.Set("crouch_height", s.CrouchHeight)
	floats.Set("grounded_vertical_velocity", s.GroundedVerticalVelocity)
	floats.Set("probe_extra_length", s.ProbeExtraLength)

	for _, name := range floats.Keys() {
		v, _ := floats.Get(name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s: must be finite, got %v", name, v))
			continue
		}
		if err := checkRange(name, v); err != nil {
			errs = append(errs, err)
		}
	}

	durations := orderedmap.NewOrderedMap[string, time.Duration]()
	durations.Set("max_jump_time", s.MaxJumpTime)
	durations.Set("coyote_time", s.CoyoteTime)
	durations.Set("jump_cooldown", s.JumpCooldown)
	for _, name := range durations.Keys() {
		if d, _ := durations.Get(name); d < 0 {
			errs = append(errs, fmt.Errorf("%s: must be non-negative, got %s", name, d))
		}
	}

	return errors.Join(errs...)
}

func checkRange(name string, v float64) error {
	switch name {
	case "normal_fov", "sprint_fov":
		return nil
	case "gravity":
		if v >= 0 {
			return fmt.Errorf("gravity: must be negative, got %v", v)
		}
	case "crouch_height":
		if v <= 0 {
			return fmt.Errorf("crouch_height: must be positive, got %v", v)
		}
	case "player_input_influence":
		if v < 0 || v > 1 {
			return fmt.Errorf("player_input_influence: must be in [0,1], got %v", v)
		}
	case "max_climb_angle":
		if v < 0 || v > 90 {
			return fmt.Errorf("max_climb_angle: must be in [0,90], got %v", v)
		}
	case "grounded_vertical_velocity":
		if v > 0 {
			return fmt.Errorf("grounded_vertical_velocity: must not be positive, got %v", v)
		}
	default:
		if v < 0 {
			return fmt.Errorf("%s: must be non-negative, got %v", name, v)
		}
	}
	return nil
}
