package physics

import (
	"fmt"
	"math"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/repeale/fp-go/option"
)

type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "", "x", "X":
		return AxisX, nil
	case "z", "Z":
		return AxisZ, nil
	default:
		return AxisX, fmt.Errorf("unknown slope axis %q", s)
	}
}

// Surface is a walkable rectangle in the XZ plane. With a zero Slope it is
// a flat floor at BaseY; otherwise it rises from its Min edge along Axis by
// Slope degrees.
type Surface struct {
	Name string
	MinX float64
	MaxX float64
	MinZ float64
	MaxZ float64

	BaseY float64
	Slope float64
	Axis  Axis
}

func (s Surface) Contains(x, z float64) bool {
	return x >= s.MinX && x <= s.MaxX && z >= s.MinZ && z <= s.MaxZ
}

func (s Surface) HeightAt(x, z float64) float64 {
	if s.Slope == 0 {
		return s.BaseY
	}
	along := x - s.MinX
	if s.Axis == AxisZ {
		along = z - s.MinZ
	}
	return s.BaseY + along*math.Tan(mgl64.DegToRad(s.Slope))
}

func (s Surface) Normal() mgl64.Vec3 {
	rad := mgl64.DegToRad(s.Slope)
	if s.Axis == AxisZ {
		return mgl64.Vec3{0, math.Cos(rad), -math.Sin(rad)}
	}
	return mgl64.Vec3{-math.Sin(rad), math.Cos(rad), 0}
}

func (s Surface) origin() mgl64.Vec3 {
	return mgl64.Vec3{s.MinX, s.BaseY, s.MinZ}
}

// intersect returns the ray parameter where origin+t*dir meets the surface.
func (s Surface) intersect(origin, dir mgl64.Vec3) (float64, bool) {
	n := s.Normal()
	denom := dir.Dot(n)
	if math.Abs(denom) < CollisionAxisTolerance {
		return 0, false
	}
	t := s.origin().Sub(origin).Dot(n) / denom
	if t < 0 {
		return 0, false
	}
	p := origin.Add(dir.Mul(t))
	if !s.Contains(p.X(), p.Z()) {
		return 0, false
	}
	return t, true
}

// Terrain is the static world the reference mover collides against.
type Terrain struct {
	Surfaces []Surface
}

func NewTerrain(surfaces ...Surface) *Terrain {
	return &Terrain{Surfaces: surfaces}
}

// SupportAt returns the highest surface under (x, z) whose height is at or
// below maxY.
func (t *Terrain) SupportAt(x, z, maxY float64) (Surface, float64, bool) {
	var (
		best   Surface
		bestY  = math.Inf(-1)
		exists bool
	)
	if t == nil {
		return best, bestY, false
	}
	for _, s := range t.Surfaces {
		if !s.Contains(x, z) {
			continue
		}
		h := s.HeightAt(x, z)
		if h > maxY+CollisionAxisTolerance || h <= bestY {
			continue
		}
		best, bestY, exists = s, h, true
	}
	return best, bestY, exists
}

// Blocks reports whether a character with its feet at y and the given
// height cannot stand at (x, z) because a surface rises into its body.
func (t *Terrain) Blocks(x, z, y, height float64) bool {
	if t == nil {
		return false
	}
	for _, s := range t.Surfaces {
		if !s.Contains(x, z) {
			continue
		}
		h := s.HeightAt(x, z)
		if h > y+StepHeight && h < y+height {
			return true
		}
	}
	return false
}

// Raycast returns the nearest surface hit within maxDistance.
func (t *Terrain) Raycast(origin, dir mgl64.Vec3, maxDistance float64) opt.Option[locomotion.Hit] {
	if t == nil || dir.LenSqr() < CollisionAxisTolerance {
		return opt.None[locomotion.Hit]()
	}
	dir = dir.Normalize()

	var (
		best  locomotion.Hit
		found bool
	)
	for _, s := range t.Surfaces {
		d, ok := s.intersect(origin, dir)
		if !ok || d > maxDistance || (found && d >= best.Distance) {
			continue
		}
		best = locomotion.Hit{
			Point:    origin.Add(dir.Mul(d)),
			Normal:   s.Normal(),
			Distance: d,
		}
		found = true
	}
	if !found {
		return opt.None[locomotion.Hit]()
	}
	return opt.Some(best)
}
