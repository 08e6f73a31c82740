// Package session holds the client's in-memory state: the active transcript
// with its items, and the transcript history. Every mutation here is applied
// after the backend has confirmed the change.
package session

import (
	"errors"
	"strings"

	"github.com/csheth/minutes/internal/gateway"
	"github.com/csheth/minutes/internal/meeting"
)

var (
	// ErrNoTranscript guards item creation without a parent transcript.
	ErrNoTranscript = errors.New("select or extract a transcript first")
	// ErrEmptyTask rejects a blank task.
	ErrEmptyTask = errors.New("task is required")
	// ErrNoChange means the mutation would not alter anything, so no call is made.
	ErrNoChange = errors.New("nothing to change")
	// ErrUnknownItem means the item is not in the active list.
	ErrUnknownItem = errors.New("item is not in the active transcript")
	// ErrBusy refuses a mutation while another one on the same item is in flight.
	ErrBusy = errors.New("an update for this item is still in flight")
)

// Workspace is the active session: one transcript id and its items.
type Workspace struct {
	TranscriptID string
	Items        []meeting.ActionItem

	inFlight map[string]bool
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{inFlight: map[string]bool{}}
}

// Active reports whether a transcript is loaded.
func (w *Workspace) Active() bool {
	return w.TranscriptID != ""
}

// Load replaces the whole session with an extraction result.
func (w *Workspace) Load(ex gateway.Extraction) {
	w.TranscriptID = ex.TranscriptID
	w.Items = meeting.CloneItems(ex.Items)
	if w.Items == nil {
		w.Items = []meeting.ActionItem{}
	}
	w.inFlight = map[string]bool{}
}

// Select switches to a history entry. Its embedded items are used as-is.
func (w *Workspace) Select(t meeting.Transcript) {
	w.Load(gateway.Extraction{TranscriptID: t.ID, Items: t.Items})
}

// Clear drops the active transcript and its items.
func (w *Workspace) Clear() {
	w.TranscriptID = ""
	w.Items = []meeting.ActionItem{}
	w.inFlight = map[string]bool{}
}

// Holds reports whether id is the active transcript.
func (w *Workspace) Holds(transcriptID string) bool {
	return transcriptID != "" && w.TranscriptID == transcriptID
}

// Item looks up an active item.
func (w *Workspace) Item(id string) (meeting.ActionItem, bool) {
	if i := w.index(id); i >= 0 {
		return w.Items[i], true
	}
	return meeting.ActionItem{}, false
}

// Counts tallies the active items.
func (w *Workspace) Counts() meeting.Counts {
	return meeting.Count(w.Items)
}

// Begin marks an item as having a mutation in flight. It returns ErrBusy when
// one is already running and ErrUnknownItem when the item is not active.
func (w *Workspace) Begin(itemID string) error {
	if w.index(itemID) < 0 {
		return ErrUnknownItem
	}
	if w.inFlight == nil {
		w.inFlight = map[string]bool{}
	}
	if w.inFlight[itemID] {
		return ErrBusy
	}
	w.inFlight[itemID] = true
	return nil
}

// Done clears the in-flight mark, whatever the outcome.
func (w *Workspace) Done(itemID string) {
	delete(w.inFlight, itemID)
}

// Busy reports whether a mutation on the item is in flight.
func (w *Workspace) Busy(itemID string) bool {
	return w.inFlight[itemID]
}

// PlanAddTag returns the full tag set to send. ErrNoChange means the trimmed
// tag is blank or already present, and no request should be issued.
func (w *Workspace) PlanAddTag(itemID, tag string) ([]string, error) {
	item, ok := w.Item(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}
	tags, changed := item.TagsWith(tag)
	if !changed {
		return nil, ErrNoChange
	}
	return tags, nil
}

// PlanRemoveTag returns the tag set minus tag. The request is sent even when
// the tag is absent.
func (w *Workspace) PlanRemoveTag(itemID, tag string) ([]string, error) {
	item, ok := w.Item(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}
	return item.TagsWithout(tag), nil
}

// PlanCreate validates a creation request against the active transcript.
func (w *Workspace) PlanCreate(task, owner, dueDate string) (gateway.NewItem, error) {
	if !w.Active() {
		return gateway.NewItem{}, ErrNoTranscript
	}
	task = strings.TrimSpace(task)
	if task == "" {
		return gateway.NewItem{}, ErrEmptyTask
	}
	return gateway.NewItem{
		Task:         task,
		TranscriptID: w.TranscriptID,
		Owner:        meeting.StringPtr(owner),
		DueDate:      meeting.StringPtr(dueDate),
	}, nil
}

// Replace swaps in the server's representation of an item. Items that left
// the active list in the meantime are ignored.
func (w *Workspace) Replace(updated meeting.ActionItem) bool {
	i := w.index(updated.ID)
	if i < 0 {
		return false
	}
	w.Items[i] = updated.Clone()
	return true
}

// SetCompleted updates only the completion flag, using the server's value.
func (w *Workspace) SetCompleted(itemID string, completed bool) bool {
	i := w.index(itemID)
	if i < 0 {
		return false
	}
	w.Items[i].Completed = completed
	return true
}

// Append adds a confirmed new item when it belongs to the active transcript.
func (w *Workspace) Append(transcriptID string, item meeting.ActionItem) bool {
	if !w.Holds(transcriptID) {
		return false
	}
	w.Items = append(w.Items, item.Clone())
	return true
}

// Remove drops a confirmed deleted item.
func (w *Workspace) Remove(itemID string) bool {
	i := w.index(itemID)
	if i < 0 {
		return false
	}
	items := make([]meeting.ActionItem, 0, len(w.Items)-1)
	items = append(items, w.Items[:i]...)
	w.Items = append(items, w.Items[i+1:]...)
	delete(w.inFlight, itemID)
	return true
}

func (w *Workspace) index(itemID string) int {
	for i := range w.Items {
		if w.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
