package session

import (
	"log"

	"github.com/csheth/minutes/internal/meeting"
)

// History is the list of previously submitted transcripts plus the state of
// the delete confirmation dialog.
type History struct {
	Transcripts []meeting.Transcript
	Loading     bool
	Deleting    bool

	pending *meeting.Transcript
}

// NewHistory returns an empty history that has not loaded yet.
func NewHistory() *History {
	return &History{Transcripts: []meeting.Transcript{}}
}

// BeginLoad marks a fetch as running.
func (h *History) BeginLoad() {
	h.Loading = true
}

// Loaded replaces the whole list.
func (h *History) Loaded(transcripts []meeting.Transcript) {
	h.Loading = false
	h.Transcripts = make([]meeting.Transcript, 0, len(transcripts))
	for _, t := range transcripts {
		t.Items = meeting.CloneItems(t.Items)
		h.Transcripts = append(h.Transcripts, t)
	}
}

// LoadFailed is logged only; the list is left empty.
func (h *History) LoadFailed(err error) {
	h.Loading = false
	h.Transcripts = []meeting.Transcript{}
	log.Printf("[history] failed to load history: %v", err)
}

// Find returns a transcript by id.
func (h *History) Find(id string) (meeting.Transcript, bool) {
	for _, t := range h.Transcripts {
		if t.ID == id {
			return t, true
		}
	}
	return meeting.Transcript{}, false
}

// Pending is the transcript awaiting delete confirmation, if any.
func (h *History) Pending() (meeting.Transcript, bool) {
	if h.pending == nil {
		return meeting.Transcript{}, false
	}
	return *h.pending, true
}

// RequestDelete opens the confirmation dialog for t. A request made while a
// delete is in flight is ignored.
func (h *History) RequestDelete(t meeting.Transcript) bool {
	if h.Deleting {
		return false
	}
	h.pending = &t
	return true
}

// CancelDelete closes the dialog unless a delete is in flight.
func (h *History) CancelDelete() bool {
	if h.Deleting || h.pending == nil {
		return false
	}
	h.pending = nil
	return true
}

// BeginDelete starts deleting the pending transcript.
func (h *History) BeginDelete() (string, bool) {
	if h.pending == nil || h.Deleting {
		return "", false
	}
	h.Deleting = true
	return h.pending.ID, true
}

// Deleted applies a confirmed delete: the entry leaves the history, the
// dialog closes, and the workspace is cleared when it held that transcript.
func (h *History) Deleted(id string, ws *Workspace) {
	h.Deleting = false
	h.pending = nil
	out := h.Transcripts[:0:0]
	for _, t := range h.Transcripts {
		if t.ID != id {
			out = append(out, t)
		}
	}
	h.Transcripts = out
	if ws != nil && ws.Holds(id) {
		ws.Clear()
	}
}

// DeleteFailed keeps the list and the dialog as they were.
func (h *History) DeleteFailed() {
	h.Deleting = false
}

// SyncItems mirrors confirmed item changes into the matching history entry so
// reselecting the transcript shows them.
func (h *History) SyncItems(transcriptID string, items []meeting.ActionItem) {
	for i := range h.Transcripts {
		if h.Transcripts[i].ID == transcriptID {
			h.Transcripts[i].Items = meeting.CloneItems(items)
			return
		}
	}
}
