// Package meeting holds the transcript and action item shapes shared by the
// gateway, the session state, and the views.
package meeting

import (
	"strings"
	"unicode/utf8"
)

// ActionItem is a single task extracted from, or attached to, a transcript.
type ActionItem struct {
	ID        string   `json:"id"`
	Task      string   `json:"task"`
	Owner     *string  `json:"owner"`
	DueDate   *string  `json:"dueDate"`
	Completed bool     `json:"completed"`
	Tags      []string `json:"tags"`
}

// Transcript is a submitted block of meeting text plus its action items.
type Transcript struct {
	ID    string       `json:"id"`
	Text  string       `json:"text"`
	Items []ActionItem `json:"items"`
}

// OwnerLabel returns the owner or "Unassigned".
func (a ActionItem) OwnerLabel() string {
	if a.Owner == nil || strings.TrimSpace(*a.Owner) == "" {
		return "Unassigned"
	}
	return *a.Owner
}

// DueLabel returns the due date or "No date".
func (a ActionItem) DueLabel() string {
	if a.DueDate == nil || strings.TrimSpace(*a.DueDate) == "" {
		return "No date"
	}
	return *a.DueDate
}

// StateLabel mirrors the completion flag as Done/Open.
func (a ActionItem) StateLabel() string {
	if a.Completed {
		return "Done"
	}
	return "Open"
}

// Clone returns a deep copy so callers can hand items across goroutines.
func (a ActionItem) Clone() ActionItem {
	out := a
	if a.Owner != nil {
		owner := *a.Owner
		out.Owner = &owner
	}
	if a.DueDate != nil {
		due := *a.DueDate
		out.DueDate = &due
	}
	if a.Tags != nil {
		out.Tags = append(make([]string, 0, len(a.Tags)), a.Tags...)
	}
	return out
}

// CloneItems deep-copies a list of items.
func CloneItems(items []ActionItem) []ActionItem {
	if items == nil {
		return nil
	}
	out := make([]ActionItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// Preview returns the first limit runes of the transcript text followed by
// "..." when the text was cut.
func (t Transcript) Preview(limit int) string {
	text := strings.Join(strings.Fields(t.Text), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}

// StringPtr returns a pointer to a trimmed value, or nil when it is blank.
func StringPtr(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
