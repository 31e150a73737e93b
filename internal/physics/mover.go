package physics

import (
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/repeale/fp-go/option"
)

// MoveResult describes the outcome of one Move.
type MoveResult struct {
	Position mgl64.Vec3
	Grounded bool
	BlockedX bool
	BlockedZ bool
}

// Mover is a deterministic stand-in for a character physics engine. The
// position is the character's feet. It implements locomotion.Ground; both
// queries answer from the last Move.
type Mover struct {
	terrain  *Terrain
	position mgl64.Vec3
	shape    locomotion.Shape
	grounded bool
}

var _ locomotion.Ground = (*Mover)(nil)

func NewMover(terrain *Terrain, spawn mgl64.Vec3, shape locomotion.Shape) *Mover {
	m := &Mover{
		terrain:  terrain,
		position: spawn,
		shape:    shape,
	}
	if _, floor, ok := terrain.SupportAt(spawn.X(), spawn.Z(), spawn.Y()); ok {
		m.grounded = spawn.Y()-floor <= ContactSkin
	}
	return m
}

func (m *Mover) SetShape(shape locomotion.Shape) {
	m.shape = shape
}

func (m *Mover) Shape() locomotion.Shape {
	return m.shape
}

func (m *Mover) Position() mgl64.Vec3 {
	return m.position
}

// Teleport places the character and clears its contact state.
func (m *Mover) Teleport(pos mgl64.Vec3) {
	m.position = pos
	m.grounded = false
}

func (m *Mover) IsGrounded() bool {
	return m.grounded
}

func (m *Mover) Probe(direction mgl64.Vec3, maxDistance float64) opt.Option[locomotion.Hit] {
	origin := m.position.Add(mgl64.Vec3{0, ContactSkin, 0})
	hit := m.terrain.Raycast(origin, direction, maxDistance+ContactSkin)
	if opt.IsNone(hit) {
		return hit
	}
	h := hit.Value
	h.Distance = max(0, h.Distance-ContactSkin)
	return opt.Some(h)
}

// Move translates the character by displacement, resolving the horizontal
// axes first and then settling vertically against the terrain.
func (m *Mover) Move(displacement mgl64.Vec3) MoveResult {
	pos := m.position
	var res MoveResult

	pos[0], res.BlockedX = m.resolveHorizontal(pos, 0, displacement.X())
	pos[2], res.BlockedZ = m.resolveHorizontal(pos, 2, displacement.Z())

	pos[1], res.Grounded = m.resolveVertical(pos, displacement.Y())

	m.position = pos
	m.grounded = res.Grounded
	res.Position = pos
	return res
}

// resolveHorizontal moves pos along one horizontal axis (0 for X, 2 for Z)
// and reports whether the terrain blocked it.
func (m *Mover) resolveHorizontal(pos mgl64.Vec3, axis int, delta float64) (float64, bool) {
	if nearlyZero(delta) {
		return pos[axis] + delta, false
	}

	next := pos
	next[axis] += delta
	if m.terrain.Blocks(next.X(), next.Z(), pos.Y(), m.shape.Height) {
		return pos[axis], true
	}
	return next[axis], false
}

func nearlyZero(v float64) bool {
	return v > -CollisionAxisTolerance && v < CollisionAxisTolerance
}

func (m *Mover) resolveVertical(pos mgl64.Vec3, dy float64) (float64, bool) {
	y := pos.Y() + dy
	_, floor, ok := m.terrain.SupportAt(pos.X(), pos.Z(), pos.Y()+StepHeight)
	if !ok {
		return y, false
	}
	if y <= floor {
		return floor, true
	}
	if m.grounded && dy <= 0 && y-floor <= GroundSnapDistance {
		return floor, true
	}
	return y, false
}
