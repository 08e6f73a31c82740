// Package insights derives aggregate statistics from the transcript history
// and renders them for the terminal or as a JSON export.
package insights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/csheth/minutes/internal/meeting"
)

// Report is the five-number summary shown on the insights tab.
type Report struct {
	Transcripts    int `json:"totalTranscripts"`
	Tasks          int `json:"totalTasks"`
	Completed      int `json:"completedTasks"`
	Open           int `json:"openTasks"`
	CompletionRate int `json:"completionRate"`
}

// Row is a label/value pair in display order.
type Row struct {
	Label string
	Value string
}

// Compute tallies transcripts and their embedded items. The completion rate
// is a whole percentage rounded half away from zero, and 0 with no tasks.
func Compute(transcripts []meeting.Transcript) Report {
	r := Report{Transcripts: len(transcripts)}
	for _, t := range transcripts {
		counts := meeting.Count(t.Items)
		r.Tasks += counts.Total
		r.Completed += counts.Completed
	}
	r.Open = r.Tasks - r.Completed
	if r.Tasks > 0 {
		r.CompletionRate = int(math.Round(100 * float64(r.Completed) / float64(r.Tasks)))
	}
	return r
}

// Rows lists the report in the order the views show it.
func (r Report) Rows() []Row {
	return []Row{
		{Label: "Total Transcripts", Value: fmt.Sprint(r.Transcripts)},
		{Label: "Total Tasks", Value: fmt.Sprint(r.Tasks)},
		{Label: "Completed Tasks", Value: fmt.Sprint(r.Completed)},
		{Label: "Open Tasks", Value: fmt.Sprint(r.Open)},
		{Label: "Completion Rate", Value: fmt.Sprintf("%d%%", r.CompletionRate)},
	}
}

// Markdown renders the report as a two-column table.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Insights\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | ---: |\n")
	for _, row := range r.Rows() {
		fmt.Fprintf(&b, "| %s | %s |\n", row.Label, row.Value)
	}
	return b.String()
}

// WriteJSON exports the report to path, replacing any previous file
// atomically.
func WriteJSON(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write insights: %w", err)
	}
	return nil
}
