// Package sim assembles a body from configuration and replays input
// against it without a renderer.
package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Versifine/stride/internal/body"
	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/physics"
	"github.com/zeebo/xxh3"
)

type World struct {
	Body     *body.Body
	Camera   *body.CameraRig
	Bus      *event.Bus
	Interval time.Duration
	// Trace, when set, receives every tick as a CBOR record.
	Trace io.Writer

	stats Summary
}

// Summary aggregates what happened during a replay.
type Summary struct {
	Ticks       int
	Duration    time.Duration
	Jumps       int
	Landings    int
	PoseChanges int
	SlideStarts int
	MaxHeight   float64
	Final       body.Snapshot
	// Digest is an XXH3 hash over the encoded trace. Two replays of the same
	// frames under the same configuration produce the same digest.
	Digest uint64
}

func New(cfg *config.Config) (*World, error) {
	terrain, err := cfg.World.Terrain()
	if err != nil {
		return nil, fmt.Errorf("build terrain: %w", err)
	}
	mover := physics.NewMover(terrain, cfg.Character.SpawnPoint(), cfg.Character.Shape())

	w := &World{
		Camera:   body.NewCameraRig(),
		Bus:      event.NewBus(),
		Interval: cfg.Simulation.TickInterval(),
	}
	w.subscribe()

	w.Body, err = body.New(cfg.Controller.Settings(), mover, w.Camera, w.Bus)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) subscribe() {
	w.Bus.Subscribe(event.EventJump, func(any) { w.stats.Jumps++ })
	w.Bus.Subscribe(event.EventLand, func(any) { w.stats.Landings++ })
	w.Bus.Subscribe(event.EventPose, func(any) { w.stats.PoseChanges++ })
	w.Bus.Subscribe(event.EventSlide, func(raw any) {
		if e, ok := raw.(event.SlideEvent); ok && e.Sliding {
			w.stats.SlideStarts++
		}
	})
}

// Replay ticks the body once per frame at the world's interval. It stops
// early with the context's error if ctx is cancelled.
func (w *World) Replay(ctx context.Context, frames []input.Frame) (Summary, error) {
	start := w.Body.Snapshot()
	w.stats = Summary{MaxHeight: start.Position.Y(), Final: start}
	digest := xxh3.New()

	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return w.stats, err
		}
		snap, err := w.Body.Tick(f, w.Interval)
		if err != nil {
			return w.stats, fmt.Errorf("tick %d: %w", i, err)
		}
		w.stats.Ticks++
		w.stats.Duration += w.Interval
		w.stats.MaxHeight = max(w.stats.MaxHeight, snap.Position.Y())
		w.stats.Final = snap

		rec, err := encodeRecord(NewTraceRecord(snap))
		if err != nil {
			return w.stats, err
		}
		_, _ = digest.Write(rec)
		w.stats.Digest = digest.Sum64()
		if w.Trace != nil {
			if _, err := w.Trace.Write(rec); err != nil {
				return w.stats, fmt.Errorf("write trace: %w", err)
			}
		}

		slog.Debug("Tick",
			"tick", snap.Tick,
			"pos", snap.Position,
			"vel", snap.Velocity,
			"grounded", snap.Grounded,
			"crouching", snap.Crouching,
			"sliding", snap.Sliding,
			"fov", snap.FOV,
		)
	}
	return w.stats, nil
}
