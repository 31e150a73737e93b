package locomotion

import (
	"math"
	"time"
)

// JumpVelocity is the launch speed that reaches JumpHeight under Gravity.
func JumpVelocity(settings Settings) float64 {
	return math.Sqrt(settings.JumpHeight * -2 * settings.Gravity)
}

func canJump(st State, now time.Duration, settings Settings) bool {
	inCoyote := st.IsGrounded || now-st.LastGroundedTime <= settings.CoyoteTime
	cooledDown := now-st.LastJumpTime >= settings.JumpCooldown
	return inCoyote && cooledDown
}

// updateGrounded latches the contact flag and seats a grounded character
// that is moving down.
func updateGrounded(st *State, grounded bool, now time.Duration, settings Settings) {
	st.IsGrounded = grounded
	if !grounded {
		return
	}
	st.LastGroundedTime = now
	if st.Velocity[1] < 0 {
		st.Velocity[1] = settings.GroundedVerticalVelocity
	}
}

// updateJump runs trigger, hold and release for one tick and reports
// whether a new jump started. Presses during cooldown or outside the coyote
// window are dropped, not queued.
func updateJump(st *State, in Input, settings Settings) bool {
	triggered := false
	if in.Jump.Down && canJump(*st, in.Now, settings) {
		st.IsJumping = true
		st.JumpTimer = 0
		st.Velocity[1] = JumpVelocity(settings)
		st.LastJumpTime = in.Now
		triggered = true
	}

	if in.Jump.Held && st.IsJumping {
		st.JumpTimer += in.DT
		if st.JumpTimer < settings.MaxJumpTime {
			st.Velocity[1] = JumpVelocity(settings)
		} else {
			st.IsJumping = false
		}
	}

	if in.Jump.Up {
		st.IsJumping = false
	}
	return triggered
}

func applyGravity(st *State, dt float64, settings Settings) {
	st.Velocity[1] += settings.Gravity * dt
}
