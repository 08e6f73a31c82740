package tuitest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseFramesSplitsOnClear(t *testing.T) {
	t.Parallel()
	raw := []byte("\x1b[2J\x1b[H\x1b[1mTotal Tasks\x1b[0m   \r\n1\x1b[2J\x1b[HAction Items\n\n\n")
	rec := &Recording{Frames: parseFrames(raw)}

	if len(rec.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(rec.Frames))
	}
	if diff := cmp.Diff([]string{"Total Tasks", "1"}, rec.Frames[0].Lines()); diff != "" {
		t.Fatalf("first frame mismatch (-want +got):\n%s", diff)
	}
	final, ok := rec.FinalFrame()
	if !ok || final.Plain != "Action Items" {
		t.Fatalf("final frame = %q", final.Plain)
	}
	if !rec.Contains("Total Tasks") || rec.Contains("Insights") {
		t.Fatal("Contains should search every frame")
	}
	if f, ok := rec.FindFrame("Action"); !ok || f.Index != 1 {
		t.Fatalf("FindFrame index = %d", f.Index)
	}
}

func TestStripANSIRemovesOSC(t *testing.T) {
	t.Parallel()
	if got := stripANSI("\x1b]11;?\x07hello\x1b[31m!\x1b[0m"); got != "hello!" {
		t.Fatalf("stripANSI() = %q", got)
	}
}

func TestTypeOneStepPerRune(t *testing.T) {
	t.Parallel()
	steps := Script(Type("hé", time.Millisecond), []Step{{Input: KeyCtrlS}})
	want := []Step{
		{Delay: time.Millisecond, Input: []byte("h")},
		{Delay: time.Millisecond, Input: []byte("é")},
		{Input: KeyCtrlS},
	}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRequiresCommand(t *testing.T) {
	t.Parallel()
	if _, err := Run(context.Background(), Config{}); err == nil {
		t.Fatal("expected an error without a command")
	}
}

func TestScreenShowsPlainText(t *testing.T) {
	t.Parallel()
	var s screen
	_, _ = s.Write([]byte("\x1b[1mAction\x1b[0m"))
	if s.shows("Action Items") {
		t.Fatal("text not yet drawn")
	}
	_, _ = s.Write([]byte(" Items"))
	if !s.shows("Action Items") {
		t.Fatal("styled text should match once drawn")
	}
}

func TestWaitForTimesOut(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := waitFor(ctx, &screen{}, "never"); err == nil {
		t.Fatal("expected a timeout")
	}
}

func TestExitAllowed(t *testing.T) {
	t.Parallel()
	interrupted := errors.New("signal: interrupt")
	if exitAllowed(interrupted, Config{}) {
		t.Fatal("interrupt should need AllowInterrupt")
	}
	if !exitAllowed(interrupted, Config{AllowInterrupt: true}) {
		t.Fatal("interrupt should be allowed")
	}
}
