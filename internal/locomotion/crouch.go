package locomotion

// updateCrouch applies the crouch key to the pose. Geometry only changes on
// the tick the key state flips; the returned bool reports such a change.
// While the key is held the speed cap is the crouch speed.
func updateCrouch(st *State, held bool, settings Settings, speed float64) (float64, bool) {
	if held {
		if st.IsCrouching {
			return settings.CrouchSpeed, false
		}
		st.IsCrouching = true
		st.Shape = Shape{
			Height:  settings.CrouchHeight,
			CenterY: settings.CrouchHeight / 2,
		}
		return settings.CrouchSpeed, true
	}

	if !st.IsCrouching {
		return speed, false
	}
	st.IsCrouching = false
	st.Shape = st.DefaultShape
	return speed, true
}
