package tui

import (
	"strings"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	composerHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 14,
		composerHeight: 5,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.composerHeight = 5
	if height < 30 {
		l.composerHeight = 3
	}
	// tabs, stat row, composer chrome, status and help lines
	const chrome = 16
	usable := height - chrome - l.composerHeight
	if usable < 6 {
		usable = 6
	}
	l.viewportHeight = usable
}

func (m *model) applyLayout() {
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.composer.SetWidth(m.layout.viewportWidth)
	m.composer.SetHeight(m.layout.composerHeight)
	m.help.Width = m.layout.viewportWidth
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

// refreshViewport rebuilds the scrollable workspace body and keeps the
// focused row on screen.
func (m *model) refreshViewport() {
	content := m.buildWorkspaceContent()
	m.viewport.SetContent(content)
	m.ensureCursorVisible()
}

func (m *model) ensureCursorVisible() {
	if m.focus == focusComposer || m.viewport.Height <= 0 {
		return
	}
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	switch {
	case m.cursorLine < top:
		m.viewport.SetYOffset(m.cursorLine)
	case m.cursorLine+2 > bottom:
		m.viewport.SetYOffset(m.cursorLine + 2 - m.viewport.Height + 1)
	}
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width - padding
	if width < 20 {
		width = 20
	}
	return width
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
