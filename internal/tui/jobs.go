package tui

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindExtract          jobKind = "extract"
	jobKindHistory          jobKind = "history"
	jobKindDeleteTranscript jobKind = "delete-transcript"
	jobKindUpdateItem       jobKind = "update-item"
	jobKindCreateItem       jobKind = "create-item"
	jobKindDeleteItem       jobKind = "delete-item"
	jobKindInsights         jobKind = "insights"
	jobKindClipboard        jobKind = "clipboard"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
	jobStatusCanceled  jobStatus = "canceled"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	timeout time.Duration
}

// newJobBus bounds every job by timeout; zero leaves jobs unbounded.
func newJobBus(timeout time.Duration) *jobBus {
	return &jobBus{timeout: timeout}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start runs runner detached from any view.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	return b.StartWithContext(context.Background(), kind, runner)
}

// StartWithContext runs runner under parent, so the caller can cancel it
// when the view that asked for it goes away.
func (b *jobBus) StartWithContext(parent context.Context, kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		ctx := parent
		if b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, b.timeout)
			defer cancel()
		}
		payload, err := runner(ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		switch {
		case err != nil && parent.Err() != nil:
			snapshot.Status = jobStatusCanceled
			snapshot.Err = err.Error()
		case err != nil:
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		default:
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s (duration=%s, err=%v)", kind, snapshot.Status, snapshot.Duration, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}
