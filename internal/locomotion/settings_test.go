package locomotion

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("DefaultSettings().Validate() = %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"nan sensitivity", func(s *Settings) { s.CameraSensitivity = math.NaN() }, "camera_sensitivity: must be finite"},
		{"negative walk speed", func(s *Settings) { s.WalkSpeed = -1 }, "walk_speed: must be non-negative"},
		{"zero gravity", func(s *Settings) { s.Gravity = 0 }, "gravity: must be negative"},
		{"influence above one", func(s *Settings) { s.PlayerInputInfluence = 1.5 }, "player_input_influence"},
		{"negative coyote time", func(s *Settings) { s.CoyoteTime = -time.Millisecond }, "coyote_time"},
		{"upward seating velocity", func(s *Settings) { s.GroundedVerticalVelocity = 1 }, "grounded_vertical_velocity"},
		{"zero crouch height", func(s *Settings) { s.CrouchHeight = 0 }, "crouch_height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestSettingsValidate_ReportsEveryProblem(t *testing.T) {
	s := DefaultSettings()
	s.WalkSpeed = -1
	s.SprintSpeed = -1

	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, name := range []string{"walk_speed", "sprint_speed"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("Validate() = %q, missing %s", err.Error(), name)
		}
	}
}

func TestSettingsValidate_FieldOrder(t *testing.T) {
	s := DefaultSettings()
	s.CrouchHeight = -1
	s.CameraSensitivity = -1
	s.JumpCooldown = -time.Second

	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	lines := strings.Split(err.Error(), "\n")
	want := []string{"camera_sensitivity", "crouch_height", "jump_cooldown"}
	if len(lines) != len(want) {
		t.Fatalf("Validate() = %q, want %d problems", err.Error(), len(want))
	}
	for i, name := range want {
		if !strings.HasPrefix(lines[i], name+":") {
			t.Fatalf("problem %d = %q, want %s first", i, lines[i], name)
		}
	}
}
