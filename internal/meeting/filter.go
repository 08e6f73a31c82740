package meeting

import (
	"fmt"
	"strings"
)

// Filter is the view-layer projection applied to the active item list.
type Filter int

const (
	FilterAll Filter = iota
	FilterOpen
	FilterCompleted
)

// Filters lists every filter in chip order.
var Filters = []Filter{FilterAll, FilterOpen, FilterCompleted}

func (f Filter) String() string {
	switch f {
	case FilterOpen:
		return "open"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// ParseFilter accepts the names produced by String.
func ParseFilter(value string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return FilterAll, nil
	case "open":
		return FilterOpen, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, open, or completed)", value)
	}
}

// Next cycles all -> open -> completed -> all.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// Match reports whether a single item passes the filter.
func (f Filter) Match(item ActionItem) bool {
	switch f {
	case FilterOpen:
		return !item.Completed
	case FilterCompleted:
		return item.Completed
	default:
		return true
	}
}

// Apply returns the items that pass the filter, preserving order.
// The input slice is never modified.
func (f Filter) Apply(items []ActionItem) []ActionItem {
	out := make([]ActionItem, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// EmptyMessage is shown when Apply yields nothing.
func (f Filter) EmptyMessage(total int) string {
	if total == 0 || f == FilterAll {
		return "No tasks yet"
	}
	return fmt.Sprintf("No %s tasks", f)
}

// Counts is the workspace stat row.
type Counts struct {
	Total     int
	Open      int
	Completed int
}

// Count tallies items for the stat row.
func Count(items []ActionItem) Counts {
	var c Counts
	for _, item := range items {
		c.Total++
		if item.Completed {
			c.Completed++
		}
	}
	c.Open = c.Total - c.Completed
	return c
}
