package sim

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/locomotion"
)

func TestReplaySampleScript(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	script, err := input.LoadScript(filepath.Join("..", "..", "configs", "script.yaml"))
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	frames := script.Frames(w.Interval)
	sum, err := w.Replay(context.Background(), frames)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if sum.Ticks != len(frames) {
		t.Fatalf("ticks = %d, want %d", sum.Ticks, len(frames))
	}
	if sum.Jumps != 2 {
		t.Fatalf("jumps = %d, want 2", sum.Jumps)
	}
	if sum.Landings < 2 {
		t.Fatalf("landings = %d, want at least 2", sum.Landings)
	}
	if sum.PoseChanges != 2 {
		t.Fatalf("pose changes = %d, want 2 (crouch and stand)", sum.PoseChanges)
	}
	if sum.Final.Crouching {
		t.Fatalf("final crouching = true, want standing")
	}
	if !sum.Final.Grounded {
		t.Fatalf("final grounded = false")
	}
	if sum.MaxHeight <= cfg.Character.Spawn[1] {
		t.Fatalf("max height = %.3f, want above spawn", sum.MaxHeight)
	}
}

func TestReplayFullJumpReachesHeight(t *testing.T) {
	cfg := config.Default()
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	frames := make([]input.Frame, 120)
	for i := range frames[:60] {
		frames[i].Jump = true
	}
	sum, err := w.Replay(context.Background(), frames)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	// Held for the whole jump window the apex is well above a tap apex.
	tapApex := locomotion.DefaultJumpHeight
	if sum.MaxHeight <= tapApex {
		t.Fatalf("max height = %.3f, want above %.3f", sum.MaxHeight, tapApex)
	}
	if math.IsInf(sum.MaxHeight, 0) {
		t.Fatalf("max height not recorded")
	}
}

func TestReplayWithoutFramesReportsSpawn(t *testing.T) {
	cfg := config.Default()
	cfg.Character.Spawn = [3]float64{1, 2.5, -1}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sum, err := w.Replay(context.Background(), nil)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if sum.Ticks != 0 {
		t.Fatalf("ticks = %d, want 0", sum.Ticks)
	}
	if sum.MaxHeight != 2.5 {
		t.Fatalf("max height = %v, want spawn height 2.5", sum.MaxHeight)
	}
	if sum.Final.Position != cfg.Character.SpawnPoint() {
		t.Fatalf("final position = %v, want spawn %v", sum.Final.Position, cfg.Character.SpawnPoint())
	}
}

func TestReplayStopsOnCancel(t *testing.T) {
	w, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := w.Replay(ctx, make([]input.Frame, 10))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if sum.Ticks != 0 {
		t.Fatalf("ticks = %d, want 0", sum.Ticks)
	}
}

func TestNewRejectsBadTerrain(t *testing.T) {
	cfg := config.Default()
	cfg.World.Surfaces[0].Axis = "y"
	if _, err := New(cfg); err == nil {
		t.Fatalf("New error = nil, want terrain error")
	}
}

func walkAndJump() []input.Frame {
	frames := make([]input.Frame, 90)
	for i := range frames {
		frames[i].Forward = 1
		frames[i].MouseX = 0.5
	}
	frames[30].Jump = true
	return frames
}

func TestReplayDigestIsDeterministic(t *testing.T) {
	run := func(frames []input.Frame) uint64 {
		w, err := New(config.Default())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		sum, err := w.Replay(context.Background(), frames)
		if err != nil {
			t.Fatalf("Replay failed: %v", err)
		}
		return sum.Digest
	}

	first := run(walkAndJump())
	if second := run(walkAndJump()); second != first {
		t.Fatalf("digest = %x, want %x on an identical replay", second, first)
	}

	changed := walkAndJump()
	changed[60].Crouch = true
	if got := run(changed); got == first {
		t.Fatalf("digest unchanged after altering input")
	}
}

func TestReplayWritesTrace(t *testing.T) {
	w, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var buf bytes.Buffer
	w.Trace = &buf

	frames := walkAndJump()
	sum, err := w.Replay(context.Background(), frames)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	records, err := ReadTrace(&buf)
	if err != nil {
		t.Fatalf("ReadTrace failed: %v", err)
	}
	if len(records) != len(frames) {
		t.Fatalf("records = %d, want %d", len(records), len(frames))
	}
	last := records[len(records)-1]
	if last != NewTraceRecord(sum.Final) {
		t.Fatalf("last record = %+v, want %+v", last, NewTraceRecord(sum.Final))
	}
	if last.Now() != sum.Duration {
		t.Fatalf("last record time = %s, want %s", last.Now(), sum.Duration)
	}
	jumped := 0
	for _, r := range records {
		if r.Jumped {
			jumped++
		}
	}
	if jumped != 1 || !records[30].Jumped {
		t.Fatalf("jumped records = %d (tick 31 jumped=%t), want exactly tick 31", jumped, records[30].Jumped)
	}
}

func TestReadTraceRejectsGarbage(t *testing.T) {
	if _, err := ReadTrace(bytes.NewReader([]byte{0xff, 0x00})); err == nil {
		t.Fatalf("ReadTrace error = nil, want decode error")
	}
}
