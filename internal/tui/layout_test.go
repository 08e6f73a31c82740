package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name           string
		width          int
		height         int
		viewportWidth  int
		viewportHeight int
		composerHeight int
	}{
		{name: "narrow", width: 80, height: 24, viewportWidth: 76, viewportHeight: 6, composerHeight: 3},
		{name: "wide", width: 200, height: 40, viewportWidth: 196, viewportHeight: 19, composerHeight: 5},
		{name: "tiny", width: 20, height: 10, viewportWidth: minViewportWidth, viewportHeight: 6, composerHeight: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.viewportWidth != tc.viewportWidth {
				t.Fatalf("viewport width mismatch: got %d want %d", layout.viewportWidth, tc.viewportWidth)
			}
			if layout.viewportHeight != tc.viewportHeight {
				t.Fatalf("viewport height mismatch: got %d want %d", layout.viewportHeight, tc.viewportHeight)
			}
			if layout.composerHeight != tc.composerHeight {
				t.Fatalf("composer height mismatch: got %d want %d", layout.composerHeight, tc.composerHeight)
			}
		})
	}
}

func TestIndentMultiline(t *testing.T) {
	if got := indentMultiline("a\nb", "  "); got != "  a\n  b" {
		t.Fatalf("indentMultiline() = %q", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty([]string{"a", " ", "", "b"}); got != "a\n\nb" {
		t.Fatalf("joinNonEmpty() = %q", got)
	}
}
