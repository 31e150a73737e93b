package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Versifine/stride/internal/body"
	"github.com/Versifine/stride/internal/input"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/term"
)

const (
	defaultTickInterval = 16 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	// mouseStep is the mouse delta one arrow press feeds the controller.
	mouseStep = 2.5
)

type ControlledBody interface {
	Tick(f input.Frame, dt time.Duration) (body.Snapshot, error)
	Snapshot() body.Snapshot
	Teleport(pos mgl64.Vec3)
}

type Console struct {
	body         ControlledBody
	tickInterval time.Duration
	movePulse    time.Duration
	in           io.Reader
	out          io.Writer
	outMu        deadlock.Mutex

	mu            deadlock.Mutex
	frame         input.Frame
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	commandMode   bool
	commandBuf    []rune
	statusWidth   int
}

func NewConsole(body ControlledBody, tickInterval time.Duration) *Console {
	if tickInterval <= 0 {
		tickInterval = defaultTickInterval
	}
	return &Console{
		body:         body,
		tickInterval: tickInterval,
		movePulse:    defaultMovePulse,
		in:           os.Stdin,
		out:          os.Stdout,
	}
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.body == nil {
		return fmt.Errorf("console body is nil")
	}

	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("set terminal raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
			c.printf("\r\n")
		}()
	}

	c.printf("[debug] console started (W/A/S/D pulse, Space jump, arrows look, [ crouch, ] sprint, X clear, : command)\r\n")
	c.renderStatusLine()

	go c.tickLoop(ctx)

	reader := bufio.NewReader(c.in)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil || err == io.EOF {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		c.handleKey(reader, b)
	}
}

func (c *Console) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := c.body.Tick(c.nextFrame(now), c.tickInterval); err != nil {
				slog.Debug("debug body tick failed", "error", err)
			}
			c.renderStatusLine()
		}
	}
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(&c.forwardUntil, &c.backwardUntil, func(f *input.Frame) { f.Forward = 1 })
	case 's', 'S':
		c.pulse(&c.backwardUntil, &c.forwardUntil, func(f *input.Frame) { f.Forward = -1 })
	case 'a', 'A':
		c.pulse(&c.leftUntil, &c.rightUntil, func(f *input.Frame) { f.Right = -1 })
	case 'd', 'D':
		c.pulse(&c.rightUntil, &c.leftUntil, func(f *input.Frame) { f.Right = 1 })
	case ' ':
		c.toggle(func(f *input.Frame) { f.Jump = !f.Jump })
	case '[':
		c.toggleCrouch()
	case ']':
		c.toggleSprint()
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			c.look(-mouseStep, 0)
		case 'C': // right
			c.look(mouseStep, 0)
		case 'A': // up
			c.look(0, mouseStep)
		case 'B': // down
			c.look(0, -mouseStep)
		}
	}
	c.renderStatusLine()
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	c.printf("\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		c.printf("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		c.printf("\r\n[debug] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		c.printf("\r:%s ", buf)
		c.printf("\r:%s", buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		c.printf("\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		s := c.body.Snapshot()
		c.printf("[debug] tick=%d t=%s pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f) ground=%t crouch=%t slide=%t height=%.2f\r\n",
			s.Tick, s.Now,
			s.Position.X(), s.Position.Y(), s.Position.Z(),
			s.Velocity.X(), s.Velocity.Y(), s.Velocity.Z(),
			s.Grounded, s.Crouching, s.Sliding, s.Shape.Height,
		)
	case "tp":
		if len(parts) != 4 {
			c.printf("[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		x, err1 := strconv.ParseFloat(parts[1], 64)
		y, err2 := strconv.ParseFloat(parts[2], 64)
		z, err3 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			c.printf("[debug] invalid tp args\r\n")
			return
		}
		c.body.Teleport(mgl64.Vec3{x, y, z})
		c.printf("[debug] teleported to (%.3f, %.3f, %.3f)\r\n", x, y, z)
	default:
		c.printf("[debug] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printHelp() {
	c.printf("[debug] keys:\r\n")
	c.printf("  W/S/A/D: pulse movement (~%s)\r\n", c.movePulse)
	c.printf("  Space: toggle jump held\r\n")
	c.printf("  [: toggle crouch\r\n")
	c.printf("  ]: toggle sprint\r\n")
	c.printf("  Arrow Left/Right/Up/Down: mouse delta %.1f\r\n", mouseStep)
	c.printf("  X: clear all input\r\n")
	c.printf("  : enter command mode\r\n")
	c.printf("[debug] commands:\r\n")
	c.printf("  :tp <x> <y> <z>\r\n")
	c.printf("  :state\r\n")
	c.printf("  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	f := c.frame
	width := c.statusWidth
	c.mu.Unlock()

	s := c.body.Snapshot()
	pose := "stand"
	if s.Crouching {
		pose = "crouch"
	}

	line := fmt.Sprintf(
		"[MOV:%+.0f,%+.0f SPR:%s CRH:%s JMP:%s | YAW:%.1f PIT:%.1f FOV:%.1f | X:%.2f Y:%.2f Z:%.2f %s ground:%t slide:%t]",
		f.Forward, f.Right,
		boolLabel(f.Sprint),
		boolLabel(f.Crouch),
		boolLabel(f.Jump),
		s.Yaw, s.Pitch, s.FOV,
		s.Position.X(), s.Position.Y(), s.Position.Z(),
		pose, s.Grounded, s.Sliding,
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	c.printf("\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

// printf is called from both the key reader and the tick loop.
func (c *Console) printf(format string, args ...any) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) toggle(update func(*input.Frame)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	update(&c.frame)
}

func (c *Console) look(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame.MouseX += dx
	c.frame.MouseY += dy
}

// nextFrame returns the frame for the tick at now. Expired pulses are
// released and accumulated mouse deltas are consumed.
func (c *Console) nextFrame(now time.Time) input.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyMovementPulseLocked(now)
	f := c.frame
	c.frame.MouseX, c.frame.MouseY = 0, 0
	return f
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// pulse sets an axis for movePulse and cancels the opposite direction.
func (c *Console) pulse(until, opposite *time.Time, set func(*input.Frame)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set(&c.frame)
	*until = time.Now().Add(c.movePulse)
	*opposite = time.Time{}
}

func (c *Console) applyMovementPulseLocked(now time.Time) {
	expired := func(t time.Time) bool {
		return !t.IsZero() && !now.Before(t)
	}
	if expired(c.forwardUntil) && c.frame.Forward > 0 {
		c.frame.Forward = 0
		c.forwardUntil = time.Time{}
	}
	if expired(c.backwardUntil) && c.frame.Forward < 0 {
		c.frame.Forward = 0
		c.backwardUntil = time.Time{}
	}
	if expired(c.leftUntil) && c.frame.Right < 0 {
		c.frame.Right = 0
		c.leftUntil = time.Time{}
	}
	if expired(c.rightUntil) && c.frame.Right > 0 {
		c.frame.Right = 0
		c.rightUntil = time.Time{}
	}
}

func (c *Console) toggleCrouch() {
	c.mu.Lock()
	c.frame.Crouch = !c.frame.Crouch
	if c.frame.Crouch {
		c.frame.Sprint = false
	}
	enabled := c.frame.Crouch
	c.mu.Unlock()
	slog.Debug("debug crouch toggled", "enabled", enabled)
}

func (c *Console) toggleSprint() {
	c.mu.Lock()
	c.frame.Sprint = !c.frame.Sprint
	if c.frame.Sprint {
		c.frame.Crouch = false
	}
	enabled := c.frame.Sprint
	c.mu.Unlock()
	slog.Debug("debug sprint toggled", "enabled", enabled)
}

func (c *Console) clearInput() {
	c.mu.Lock()
	c.frame = input.Frame{}
	c.forwardUntil = time.Time{}
	c.backwardUntil = time.Time{}
	c.leftUntil = time.Time{}
	c.rightUntil = time.Time{}
	c.mu.Unlock()
}
