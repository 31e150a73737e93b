package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/debug"
	"github.com/Versifine/stride/internal/input"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/sim"
	"github.com/alecthomas/kong"
)

var CLI struct {
	Config string `help:"Path to the configuration file." default:"configs/config.yaml" type:"path" short:"c"`
	Debug  bool   `help:"Force debug logging."`

	Run struct {
		Script string `help:"Input script to replay." default:"configs/script.yaml" type:"path" short:"s"`
		Trace  string `help:"Write a CBOR trace of every tick to this file." type:"path"`
	} `cmd:"" help:"Replay an input script headlessly and print a summary."`

	Console struct {
	} `cmd:"" help:"Drive the character interactively from the terminal."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("stride"),
		kong.Description("a first-person locomotion controller"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		writeError(err)
	}
	level := cfg.Logging.Level
	if CLI.Debug {
		level = "debug"
	}
	if err := logger.Init(logger.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}); err != nil {
		writeError(err)
	}
	defer logger.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch ctx.Command() {
	case "run":
		err = runCommand(sigCtx, cfg, CLI.Run.Script, CLI.Run.Trace)
	case "console":
		err = consoleCommand(sigCtx, cfg)
	}
	if err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		stop()
		logger.Close()
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, cfg *config.Config, scriptPath, tracePath string) error {
	script, err := input.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	world, err := sim.New(cfg)
	if err != nil {
		return err
	}
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			return fmt.Errorf("create trace file: %w", err)
		}
		defer f.Close()
		world.Trace = f
	}

	frames := script.Frames(world.Interval)
	slog.Info("Replaying script",
		"script", scriptPath,
		"segments", len(script.Segments),
		"ticks", len(frames),
		"tick_interval", world.Interval,
	)

	sum, err := world.Replay(ctx, frames)
	if errors.Is(err, context.Canceled) {
		slog.Warn("Replay interrupted", "ticks", sum.Ticks)
		return nil
	}
	if err != nil {
		return err
	}

	final := sum.Final
	slog.Info("Replay finished",
		"ticks", sum.Ticks,
		"duration", sum.Duration,
		"jumps", sum.Jumps,
		"landings", sum.Landings,
		"pose_changes", sum.PoseChanges,
		"slides", sum.SlideStarts,
		"max_height", sum.MaxHeight,
		"digest", fmt.Sprintf("%016x", sum.Digest),
	)
	slog.Info("Final state",
		"pos", final.Position,
		"grounded", final.Grounded,
		"crouching", final.Crouching,
		"yaw", final.Yaw,
		"pitch", final.Pitch,
		"fov", final.FOV,
		"look", world.Camera.LookDirection(),
	)
	return nil
}

func consoleCommand(ctx context.Context, cfg *config.Config) error {
	world, err := sim.New(cfg)
	if err != nil {
		return err
	}
	slog.Info("Console ready", "spawn", cfg.Character.SpawnPoint(), "tick_interval", world.Interval)
	return debug.NewConsole(world.Body, world.Interval).Start(ctx)
}
