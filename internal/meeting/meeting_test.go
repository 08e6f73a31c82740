package meeting

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagsWith(t *testing.T) {
	t.Parallel()

	item := ActionItem{ID: "1", Tags: []string{"ops", "Q3"}}
	tests := []struct {
		name   string
		tag    string
		want   []string
		change bool
	}{
		{"new tag", "urgent", []string{"ops", "Q3", "urgent"}, true},
		{"trimmed before insert", "  urgent\t", []string{"ops", "Q3", "urgent"}, true},
		{"duplicate", "ops", []string{"ops", "Q3"}, false},
		{"duplicate after trim", " ops ", []string{"ops", "Q3"}, false},
		{"case differs", "q3", []string{"ops", "Q3", "q3"}, true},
		{"blank", "   ", []string{"ops", "Q3"}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, changed := item.TagsWith(tt.tag)
			if changed != tt.change {
				t.Fatalf("TagsWith(%q) changed = %v, want %v", tt.tag, changed, tt.change)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("TagsWith(%q) mismatch (-want +got):\n%s", tt.tag, diff)
			}
		})
	}
	if diff := cmp.Diff([]string{"ops", "Q3"}, item.Tags); diff != "" {
		t.Fatalf("source tags mutated (-want +got):\n%s", diff)
	}
}

func TestTagsWithoutKeepsAbsentTagsStable(t *testing.T) {
	t.Parallel()

	item := ActionItem{Tags: []string{"a", "b"}}
	if diff := cmp.Diff([]string{"b"}, item.TagsWithout("a")); diff != "" {
		t.Fatalf("remove present (-want +got):\n%s", diff)
	}
	got := item.TagsWithout("missing")
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("remove absent (-want +got):\n%s", diff)
	}
	if empty := (ActionItem{}).TagsWithout("x"); empty == nil {
		t.Fatal("TagsWithout should never return nil")
	}
}

func TestFilterApplyDoesNotTouchSource(t *testing.T) {
	t.Parallel()

	items := []ActionItem{
		{ID: "1", Task: "a", Completed: false},
		{ID: "2", Task: "b", Completed: true},
		{ID: "3", Task: "c", Completed: false},
	}
	before := CloneItems(items)

	open := FilterOpen.Apply(items)
	done := FilterCompleted.Apply(items)
	all := FilterAll.Apply(items)

	if len(open) != 2 || open[0].ID != "1" || open[1].ID != "3" {
		t.Fatalf("open filter = %+v", open)
	}
	if len(done) != 1 || done[0].ID != "2" {
		t.Fatalf("completed filter = %+v", done)
	}
	if diff := cmp.Diff(items, all); diff != "" {
		t.Fatalf("all filter (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, items); diff != "" {
		t.Fatalf("source mutated (-want +got):\n%s", diff)
	}
}

func TestFilterCycleAndParse(t *testing.T) {
	t.Parallel()

	f := FilterAll
	seen := []string{}
	for i := 0; i < 4; i++ {
		seen = append(seen, f.String())
		f = f.Next()
	}
	if diff := cmp.Diff([]string{"all", "open", "completed", "all"}, seen); diff != "" {
		t.Fatalf("cycle (-want +got):\n%s", diff)
	}
	if got, err := ParseFilter("Done"); err != nil || got != FilterCompleted {
		t.Fatalf("ParseFilter(Done) = %v, %v", got, err)
	}
	if _, err := ParseFilter("later"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
}

func TestFilterEmptyMessage(t *testing.T) {
	t.Parallel()

	if got := FilterOpen.EmptyMessage(0); got != "No tasks yet" {
		t.Fatalf("empty list message = %q", got)
	}
	if got := FilterOpen.EmptyMessage(3); got != "No open tasks" {
		t.Fatalf("open message = %q", got)
	}
	if got := FilterCompleted.EmptyMessage(3); got != "No completed tasks" {
		t.Fatalf("completed message = %q", got)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	got := Count([]ActionItem{{Completed: true}, {}, {}})
	if diff := cmp.Diff(Counts{Total: 3, Open: 2, Completed: 1}, got); diff != "" {
		t.Fatalf("Count (-want +got):\n%s", diff)
	}
}

func TestLabelsAndPreview(t *testing.T) {
	t.Parallel()

	item := ActionItem{}
	if item.OwnerLabel() != "Unassigned" || item.DueLabel() != "No date" || item.StateLabel() != "Open" {
		t.Fatalf("unexpected default labels: %q %q %q", item.OwnerLabel(), item.DueLabel(), item.StateLabel())
	}
	item.Owner = StringPtr(" Alice ")
	if item.OwnerLabel() != "Alice" {
		t.Fatalf("owner label = %q", item.OwnerLabel())
	}
	if StringPtr("   ") != nil {
		t.Fatal("blank value should map to nil")
	}

	tr := Transcript{Text: "Alice will send\nthe report by Friday."}
	if got := tr.Preview(10); got != "Alice will..." {
		t.Fatalf("Preview(10) = %q", got)
	}
	if got := tr.Preview(200); got != "Alice will send the report by Friday." {
		t.Fatalf("Preview(200) = %q", got)
	}
}

func TestTaskList(t *testing.T) {
	t.Parallel()

	items := []ActionItem{
		{Task: "send the report", Owner: StringPtr("Alice"), DueDate: StringPtr("Friday"), Tags: []string{"ops", "q3"}},
		{Task: "book the room", Completed: true},
	}
	want := "- [ ] send the report (Alice, Friday) #ops #q3\n" +
		"- [x] book the room (Unassigned, No date)\n"
	if got := TaskList(items); got != want {
		t.Fatalf("TaskList() = %q, want %q", got, want)
	}
	if got := TaskList(nil); got != "" {
		t.Fatalf("TaskList(nil) = %q", got)
	}
}
