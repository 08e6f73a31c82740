package insights

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/csheth/minutes/internal/meeting"
)

func items(done, open int) []meeting.ActionItem {
	var out []meeting.ActionItem
	for i := 0; i < done; i++ {
		out = append(out, meeting.ActionItem{Completed: true})
	}
	for i := 0; i < open; i++ {
		out = append(out, meeting.ActionItem{})
	}
	return out
}

func TestCompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		transcripts []meeting.Transcript
		want        Report
	}{
		{"empty history", nil, Report{}},
		{"transcripts without tasks", []meeting.Transcript{{ID: "a"}, {ID: "b"}}, Report{Transcripts: 2}},
		{
			"one of three done rounds down",
			[]meeting.Transcript{{Items: items(1, 2)}},
			Report{Transcripts: 1, Tasks: 3, Completed: 1, Open: 2, CompletionRate: 33},
		},
		{
			"two of three done rounds up",
			[]meeting.Transcript{{Items: items(1, 1)}, {Items: items(1, 0)}},
			Report{Transcripts: 2, Tasks: 3, Completed: 2, Open: 1, CompletionRate: 67},
		},
		{
			"exact half rounds away from zero",
			[]meeting.Transcript{{Items: items(1, 7)}},
			Report{Transcripts: 1, Tasks: 8, Completed: 1, Open: 7, CompletionRate: 13},
		},
		{
			"all done",
			[]meeting.Transcript{{Items: items(4, 0)}},
			Report{Transcripts: 1, Tasks: 4, Completed: 4, CompletionRate: 100},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Compute(tt.transcripts)); diff != "" {
				t.Fatalf("Compute (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRowsOrder(t *testing.T) {
	t.Parallel()

	r := Report{Transcripts: 2, Tasks: 5, Completed: 3, Open: 2, CompletionRate: 60}
	want := []Row{
		{"Total Transcripts", "2"},
		{"Total Tasks", "5"},
		{"Completed Tasks", "3"},
		{"Open Tasks", "2"},
		{"Completion Rate", "60%"},
	}
	if diff := cmp.Diff(want, r.Rows()); diff != "" {
		t.Fatalf("Rows (-want +got):\n%s", diff)
	}
	md := r.Markdown()
	if !strings.Contains(md, "| Completion Rate | 60% |") {
		t.Fatalf("markdown missing rate row:\n%s", md)
	}
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	out := Render(Report{Tasks: 1, Open: 1}.Markdown(), 60, "notty")
	for _, want := range []string{"Insights", "Total Tasks", "Open Tasks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
	if Render("   ", 60, "notty") != "" {
		t.Fatal("blank markdown should render empty")
	}
}

func TestDetectStyle(t *testing.T) {
	t.Setenv(styleEnvVar, "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")
	if got := DetectStyle(&bytes.Buffer{}); got != "notty" {
		t.Fatalf("non-tty writer style = %q, want notty", got)
	}
	t.Setenv(styleEnvVar, "LIGHT")
	if got := DetectStyle(&bytes.Buffer{}); got != "light" {
		t.Fatalf("override style = %q, want light", got)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "insights.json")

	want := Report{Transcripts: 1, Tasks: 2, Completed: 1, Open: 1, CompletionRate: 50}
	if err := WriteJSON(path, want); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want || !bytes.Contains(data, []byte(`"completionRate": 50`)) {
		t.Fatalf("export = %s", data)
	}
}
