package locomotion

import "github.com/go-gl/mathgl/mgl64"

// updateLook applies mouse deltas to yaw and pitch and eases the FOV.
// Pitch is set immediately; FOV moves toward its target at
// FOVTransitionSpeed per second.
func updateLook(st *State, in Input, settings Settings) {
	dx, dy := finiteOrZero(in.MouseDelta.X()), finiteOrZero(in.MouseDelta.Y())
	st.Yaw += dx * settings.CameraSensitivity

	sign := -1.0
	if settings.InvertY {
		sign = 1.0
	}
	st.Pitch = mgl64.Clamp(st.Pitch-dy*settings.CameraSensitivity*sign, -PitchLimit, PitchLimit)

	target := settings.NormalFOV
	if in.Sprint {
		target = settings.SprintFOV
	}
	st.CurrentFOV = lerp(st.CurrentFOV, target, in.DT.Seconds()*settings.FOVTransitionSpeed)
}

// cameraRotation is the camera's local rotation for a pitch in degrees.
// Positive pitch looks down.
func cameraRotation(pitch float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(pitch), worldRight)
}
