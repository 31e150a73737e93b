package locomotion

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/repeale/fp-go/option"
)

const tick = 10 * time.Millisecond

var standingShape = Shape{Height: 2.0, CenterY: 1.0}

type probeCall struct {
	direction   mgl64.Vec3
	maxDistance float64
}

type fakeGround struct {
	grounded bool
	hit      opt.Option[Hit]
	probes   []probeCall
}

func newFakeGround(grounded bool) *fakeGround {
	return &fakeGround{grounded: grounded, hit: opt.None[Hit]()}
}

func (g *fakeGround) IsGrounded() bool {
	return g.grounded
}

func (g *fakeGround) Probe(direction mgl64.Vec3, maxDistance float64) opt.Option[Hit] {
	g.probes = append(g.probes, probeCall{direction: direction, maxDistance: maxDistance})
	if opt.IsNone(g.hit) || g.hit.Value.Distance > maxDistance {
		return opt.None[Hit]()
	}
	return g.hit
}

func (g *fakeGround) setSurface(normal mgl64.Vec3, distance float64) {
	g.hit = opt.Some(Hit{
		Point:    mgl64.Vec3{0, -distance, 0},
		Normal:   normal,
		Distance: distance,
	})
}

// slopeNormal tilts world-up by angle degrees so that downhill is +X.
func slopeNormal(angle float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(angle)
	return mgl64.Vec3{math.Sin(rad), math.Cos(rad), 0}
}

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func approxVec(t *testing.T, got, want mgl64.Vec3, tol float64, field string) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("%s = %v, want %v (tol=%g)", field, got, want, tol)
		}
	}
}

func at(now time.Duration) Input {
	return Input{DT: tick, Now: now}
}
