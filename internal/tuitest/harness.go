package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 32
	defaultTimeout = 5 * time.Second

	waitPoll = 20 * time.Millisecond
)

// Step is one scripted interaction. Delay is slept first; then, when WaitFor
// is set, the step blocks until that text has been rendered; finally Input
// is written to the terminal.
type Step struct {
	Delay   time.Duration
	WaitFor string
	Input   []byte
}

// Config describes the program under test and its terminal.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
	AllowInterrupt   bool
	// Background is what the fake terminal reports for colour queries.
	Background Background
}

// Recording holds the raw terminal stream and the frames parsed from it.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// screen collects terminal output while the script runs.
type screen struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *screen) shows(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Contains(stripANSI(s.buf.String()), text)
}

func (s *screen) bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf.Bytes()...)
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Run starts the command in a pseudo terminal, plays the script, waits for
// the program to exit, and returns everything it drew.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cfg = cfg.withDefaults()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(cfg.Height), Cols: uint16(cfg.Width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	out := &screen{}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		responder := newTerminalResponder(ptmx, cfg.Background)
		chunk := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(chunk)
			if n > 0 {
				responder.Process(chunk[:n])
				_, _ = out.Write(chunk[:n])
			}
			if readErr != nil {
				return
			}
		}
	}()

	start := time.Now()
	if err := play(ctx, ptmx, out, cfg.Steps); err != nil {
		return nil, err
	}
	if err := waitExit(ctx, cmd, cfg); err != nil {
		return nil, err
	}

	// Closing the PTY lets the reader finish draining.
	_ = ptmx.Close()
	<-drained

	raw := out.bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(start)}, nil
}

func play(ctx context.Context, term *os.File, out *screen, steps []Step) error {
	for i, step := range steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: step %d: %w", i, ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if step.WaitFor != "" {
			if err := waitFor(ctx, out, step.WaitFor); err != nil {
				return fmt.Errorf("tuitest: step %d: %w", i, err)
			}
		}
		if len(step.Input) > 0 {
			if _, err := term.Write(step.Input); err != nil {
				return fmt.Errorf("tuitest: write input: %w", err)
			}
		}
	}
	return nil
}

func waitFor(ctx context.Context, out *screen, text string) error {
	ticker := time.NewTicker(waitPoll)
	defer ticker.Stop()
	for !out.shows(text) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %q: %w", text, ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}

func waitExit(ctx context.Context, cmd *exec.Cmd, cfg Config) error {
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err == nil || exitAllowed(err, cfg) {
			return nil
		}
		return fmt.Errorf("tuitest: program exited with error: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}
}

func exitAllowed(err error, cfg Config) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		for _, code := range cfg.AllowedExitCodes {
			if exitErr.ExitCode() == code {
				return true
			}
		}
	}
	return cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

var (
	// KeyEnter sends a carriage return to the PTY.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyCtrlS submits the transcript composer.
	KeyCtrlS = []byte{19}
	// KeyEsc exits transient overlays inside the TUI.
	KeyEsc = []byte{27}
	// KeyTab switches between the workspace and insights tabs.
	KeyTab = []byte{'\t'}
	// KeySpace toggles the focused action item.
	KeySpace = []byte{' '}
)

// Type returns one step per rune so the program sees ordinary key presses
// rather than a bracketed paste.
func Type(text string, delay time.Duration) []Step {
	steps := make([]Step, 0, len(text))
	for _, r := range text {
		steps = append(steps, Step{Delay: delay, Input: []byte(string(r))})
	}
	return steps
}

// Script flattens groups of steps in order.
func Script(groups ...[]Step) []Step {
	var out []Step
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
