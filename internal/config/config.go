package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Controller ControllerConfig `yaml:"controller"`
	Character  CharacterConfig  `yaml:"character"`
	Simulation SimulationConfig `yaml:"simulation"`
	World      WorldConfig      `yaml:"world"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type ControllerConfig struct {
	CameraSensitivity  float64 `yaml:"camera_sensitivity"`
	InvertY            bool    `yaml:"invert_y"`
	NormalFOV          float64 `yaml:"normal_fov"`
	SprintFOV          float64 `yaml:"sprint_fov"`
	FOVTransitionSpeed float64 `yaml:"fov_transition_speed"`

	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
	CrouchSpeed float64 `yaml:"crouch_speed"`
	Gravity     float64 `yaml:"gravity"`

	MaxClimbAngle        float64 `yaml:"max_climb_angle"`
	SlideForce           float64 `yaml:"slide_force"`
	PlayerInputInfluence float64 `yaml:"player_input_influence"`

	JumpHeight       float64       `yaml:"jump_height"`
	MaxJumpTime      time.Duration `yaml:"max_jump_time"`
	AirControlFactor float64       `yaml:"air_control_factor"`
	CoyoteTime       time.Duration `yaml:"coyote_time"`
	JumpCooldown     time.Duration `yaml:"jump_cooldown"`

	CrouchHeight float64 `yaml:"crouch_height"`

	GroundedVerticalVelocity float64 `yaml:"grounded_vertical_velocity"`
	ProbeExtraLength         float64 `yaml:"probe_extra_length"`
}

type CharacterConfig struct {
	Height  float64    `yaml:"height"`
	CenterY float64    `yaml:"center_y"`
	Spawn   [3]float64 `yaml:"spawn"`
}

type SimulationConfig struct {
	TickRate int `yaml:"tick_rate"`
}

type WorldConfig struct {
	Surfaces []SurfaceConfig `yaml:"surfaces"`
}

type SurfaceConfig struct {
	Name  string     `yaml:"name"`
	Min   [2]float64 `yaml:"min"`
	Max   [2]float64 `yaml:"max"`
	BaseY float64    `yaml:"base_y"`
	Slope float64    `yaml:"slope"`
	Axis  string     `yaml:"axis"`
}

// Default mirrors locomotion.DefaultSettings and spawns a two-unit tall
// character on a flat floor.
func Default() *Config {
	s := locomotion.DefaultSettings()
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Controller: ControllerConfig{
			CameraSensitivity:        s.CameraSensitivity,
			InvertY:                  s.InvertY,
			NormalFOV:                s.NormalFOV,
			SprintFOV:                s.SprintFOV,
			FOVTransitionSpeed:       s.FOVTransitionSpeed,
			WalkSpeed:                s.WalkSpeed,
			SprintSpeed:              s.SprintSpeed,
			CrouchSpeed:              s.CrouchSpeed,
			Gravity:                  s.Gravity,
			MaxClimbAngle:            s.MaxClimbAngle,
			SlideForce:               s.SlideForce,
			PlayerInputInfluence:     s.PlayerInputInfluence,
			JumpHeight:               s.JumpHeight,
			MaxJumpTime:              s.MaxJumpTime,
			AirControlFactor:         s.AirControlFactor,
			CoyoteTime:               s.CoyoteTime,
			JumpCooldown:             s.JumpCooldown,
			CrouchHeight:             s.CrouchHeight,
			GroundedVerticalVelocity: s.GroundedVerticalVelocity,
			ProbeExtraLength:         s.ProbeExtraLength,
		},
		Character: CharacterConfig{
			Height:  2,
			CenterY: 1,
		},
		Simulation: SimulationConfig{
			TickRate: 60,
		},
		World: WorldConfig{
			Surfaces: []SurfaceConfig{
				{Name: "floor", Min: [2]float64{-50, -50}, Max: [2]float64{50, 50}},
			},
		},
	}
}

// Load reads path over Default and validates the result. Keys missing from
// the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Controller.Settings().Validate(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	if c.Character.Height <= 0 {
		return fmt.Errorf("character: height must be positive, got %v", c.Character.Height)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation: tick_rate must be positive, got %d", c.Simulation.TickRate)
	}
	if _, err := c.World.Terrain(); err != nil {
		return fmt.Errorf("world: %w", err)
	}
	return nil
}

func (c ControllerConfig) Settings() locomotion.Settings {
	return locomotion.Settings{
		CameraSensitivity:        c.CameraSensitivity,
		InvertY:                  c.InvertY,
		NormalFOV:                c.NormalFOV,
		SprintFOV:                c.SprintFOV,
		FOVTransitionSpeed:       c.FOVTransitionSpeed,
		WalkSpeed:                c.WalkSpeed,
		SprintSpeed:              c.SprintSpeed,
		CrouchSpeed:              c.CrouchSpeed,
		Gravity:                  c.Gravity,
		MaxClimbAngle:            c.MaxClimbAngle,
		SlideForce:               c.SlideForce,
		PlayerInputInfluence:     c.PlayerInputInfluence,
		JumpHeight:               c.JumpHeight,
		MaxJumpTime:              c.MaxJumpTime,
		AirControlFactor:         c.AirControlFactor,
		CoyoteTime:               c.CoyoteTime,
		JumpCooldown:             c.JumpCooldown,
		CrouchHeight:             c.CrouchHeight,
		GroundedVerticalVelocity: c.GroundedVerticalVelocity,
		ProbeExtraLength:         c.ProbeExtraLength,
	}
}

func (c CharacterConfig) Shape() locomotion.Shape {
	return locomotion.Shape{Height: c.Height, CenterY: c.CenterY}
}

func (c CharacterConfig) SpawnPoint() mgl64.Vec3 {
	return mgl64.Vec3(c.Spawn)
}

func (c SimulationConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

func (w WorldConfig) Terrain() (*physics.Terrain, error) {
	surfaces := make([]physics.Surface, 0, len(w.Surfaces))
	for i, sc := range w.Surfaces {
		axis, err := physics.ParseAxis(sc.Axis)
		if err != nil {
			return nil, fmt.Errorf("surface %d (%s): %w", i, sc.Name, err)
		}
		if sc.Max[0] < sc.Min[0] || sc.Max[1] < sc.Min[1] {
			return nil, fmt.Errorf("surface %d (%s): max must not be below min", i, sc.Name)
		}
		if sc.Slope < 0 || sc.Slope >= 90 {
			return nil, fmt.Errorf("surface %d (%s): slope must be in [0,90), got %v", i, sc.Name, sc.Slope)
		}
		surfaces = append(surfaces, physics.Surface{
			Name:  sc.Name,
			MinX:  sc.Min[0],
			MinZ:  sc.Min[1],
			MaxX:  sc.Max[0],
			MaxZ:  sc.Max[1],
			BaseY: sc.BaseY,
			Slope: sc.Slope,
			Axis:  axis,
		})
	}
	return physics.NewTerrain(surfaces...), nil
}
