package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/minutes/internal/meeting"
)

func (m *model) View() string {
	var body string
	switch m.tab {
	case tabInsights:
		body = m.viewInsights()
	default:
		body = m.viewWorkspace()
	}
	if overlay := m.overlayView(); overlay != "" {
		body = overlay
	}
	if m.alert != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, m.alertView(), body)
	}
	return body
}

func (m *model) headerView() string {
	tabs := make([]string, 0, 2)
	for _, t := range []tab{tabWorkspace, tabInsights} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	title := lipgloss.JoinHorizontal(lipgloss.Center, titleStyle.Render("minutes"), "  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	return lipgloss.JoinVertical(lipgloss.Left, title, taglineStyle.Render(heroTagline))
}

func (m *model) viewWorkspace() string {
	m.refreshViewport()
	parts := []string{
		m.headerView(),
		m.statRowView(),
		m.composerPanel(),
		m.viewport.View(),
	}
	if m.tagging {
		parts = append(parts, m.tagInputView())
	}
	if m.createOpen {
		parts = append(parts, m.createFormView())
	}
	parts = append(parts, m.statusLine(), m.helpLine())
	return joinNonEmpty(parts)
}

func (m *model) statRowView() string {
	counts := m.ws.Counts()
	cards := []string{
		statCard("Total Tasks", counts.Total),
		statCard("Open", counts.Open),
		statCard("Completed", counts.Completed),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(label string, value int) string {
	return statCardStyle.Render(helperStyle.Render(label) + "\n" + statValueStyle.Render(fmt.Sprint(value)))
}

func (m *model) composerPanel() string {
	header := sectionHeaderStyle.Render("Meeting Transcript")
	if m.focus == focusComposer {
		header += helperStyle.Render("  (editing)")
	}
	button := buttonStyle.Render("Extract Action Items")
	if m.extracting {
		button = buttonDisabledStyle.Render(m.spinner.View() + " Extracting…")
	}
	return joinLines(header, m.composer.View(), button+"  "+helperStyle.Render("ctrl+s extract • esc leave • c edit"))
}

func (m *model) buildWorkspaceContent() string {
	cb := &contentBuilder{}
	m.cursorLine = 0
	m.writeRecent(cb)
	cb.WriteRune('\n')
	m.writeItems(cb)
	return strings.TrimRight(cb.String(), "\n")
}

func (m *model) writeRecent(cb *contentBuilder) {
	header := sectionHeaderStyle.Render("Recent Transcripts")
	if m.focus == focusHistory {
		header += helperStyle.Render("  enter select • d delete • o all")
	}
	cb.WriteString(header)
	cb.WriteRune('\n')
	switch {
	case m.history.Loading:
		cb.WriteString(helperStyle.Render(m.spinner.View() + " Loading transcripts…"))
		cb.WriteRune('\n')
		return
	case len(m.history.Transcripts) == 0:
		cb.WriteString(helperStyle.Render("No transcripts yet"))
		cb.WriteRune('\n')
		return
	}
	width := m.wrapWidth(4)
	for idx, t := range m.recent() {
		marker := "  "
		style := listItemStyle
		if m.ws.Holds(t.ID) {
			marker = "● "
		}
		if m.focus == focusHistory && idx == m.historyCursor {
			m.cursorLine = cb.Line()
			marker = "▸ "
			style = currentLineStyle
		}
		line := marker + t.Preview(recentPreviewLimit)
		cb.WriteString(style.Render(truncate.StringWithTail(line, uint(width), "…")))
		cb.WriteRune('\n')
	}
	if extra := len(m.history.Transcripts) - recentListLimit; extra > 0 {
		cb.WriteString(helperStyle.Render(fmt.Sprintf("  +%d more (o to browse)", extra)))
		cb.WriteRune('\n')
	}
}

func (m *model) filterChips() string {
	counts := m.ws.Counts()
	chips := make([]string, 0, len(meeting.Filters))
	for _, f := range meeting.Filters {
		n := counts.Total
		switch f {
		case meeting.FilterOpen:
			n = counts.Open
		case meeting.FilterCompleted:
			n = counts.Completed
		}
		label := fmt.Sprintf("%s (%d)", chipLabel(f), n)
		if f == m.filter {
			chips = append(chips, activeChipStyle.Render(label))
		} else {
			chips = append(chips, chipStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func chipLabel(f meeting.Filter) string {
	s := f.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m *model) writeItems(cb *contentBuilder) {
	header := sectionHeaderStyle.Render("Action Items")
	if m.focus == focusItems {
		header += helperStyle.Render("  space toggle • t/T tag • x delete • a add • y copy")
	}
	cb.WriteString(header)
	cb.WriteRune('\n')
	cb.WriteString(m.filterChips())
	cb.WriteRune('\n')

	visible := m.visibleItems()
	if len(visible) == 0 {
		cb.WriteString(helperStyle.Render(m.filter.EmptyMessage(len(m.ws.Items))))
		cb.WriteRune('\n')
		return
	}
	width := m.wrapWidth(8)
	for idx, item := range visible {
		current := m.focus == focusItems && idx == m.itemCursor
		if current {
			m.cursorLine = cb.Line()
		}
		cb.WriteString(m.itemRow(item, current, width))
		cb.WriteRune('\n')
	}
}

func (m *model) itemRow(item meeting.ActionItem, current bool, width int) string {
	pointer := "  "
	if current {
		pointer = "▸ "
	}
	box := "[ ]"
	task := taskStyle.Render(wordwrap.String(item.Task, width))
	state := openStateStyle.Render(item.StateLabel())
	if item.Completed {
		box = "[x]"
		task = doneTaskStyle.Render(wordwrap.String(item.Task, width))
		state = doneStateStyle.Render(item.StateLabel())
	}
	if m.ws.Busy(item.ID) {
		state += helperStyle.Render(" saving…")
	}
	first := pointer + box + " " + indentMultiline(task, "      ")[6:]
	meta := helperStyle.Render(item.OwnerLabel()+" • "+item.DueLabel()) + "  " + state

	lines := []string{first, "      " + meta}
	if len(item.Tags) > 0 {
		tags := make([]string, 0, len(item.Tags))
		for i, tag := range item.Tags {
			if current && i == clampIndex(m.tagCursor, len(item.Tags)) {
				tags = append(tags, activeTagStyle.Render("#"+tag))
			} else {
				tags = append(tags, tagStyle.Render("#"+tag))
			}
		}
		lines = append(lines, "      "+strings.Join(tags, " "))
	}
	row := strings.Join(lines, "\n")
	if current {
		return currentRowStyle.Render(row)
	}
	return row
}

func (m *model) tagInputView() string {
	target := ""
	if item, ok := m.ws.Item(m.tagTarget); ok {
		target = truncate.StringWithTail(item.Task, 40, "…")
	}
	return joinLines(
		sectionHeaderStyle.Render("Add tag")+helperStyle.Render("  "+target),
		m.tagInput.View(),
		helperStyle.Render("enter add • esc cancel"),
	)
}

func (m *model) createFormView() string {
	submit := buttonDisabledStyle.Render("Add Item")
	if m.createEnabled() {
		submit = buttonStyle.Render("Add Item")
	}
	hint := "enter add • tab next field • esc close"
	if !m.ws.Active() {
		hint = "Select or extract a transcript first. " + hint
	}
	return formBoxStyle.Render(joinLines(
		sectionHeaderStyle.Render("New Action Item"),
		m.createTask.View(),
		m.createOwner.View(),
		m.createDue.View(),
		submit+"  "+helperStyle.Render(hint),
	))
}

func (m *model) statusLine() string {
	if m.status == "" {
		return ""
	}
	return helperStyle.Render(m.status)
}

func (m *model) helpLine() string {
	return m.help.View(m.keys)
}

func (m *model) alertView() string {
	return alertStyle.Render("⚠ " + m.alert + "  (press any key)")
}

func (m *model) viewInsights() string {
	parts := []string{m.headerView()}
	switch {
	case m.insights.loading:
		parts = append(parts, helperStyle.Render(m.spinner.View()+" Gathering insights…"))
	case m.insights.err != "":
		parts = append(parts, errorStyle.Render("Could not load insights: "+m.insights.err), helperStyle.Render("Press r to retry."))
	case m.insights.report != nil:
		cards := []string{}
		for _, row := range m.insights.report.Rows() {
			cards = append(cards, statCardStyle.Render(helperStyle.Render(row.Label)+"\n"+statValueStyle.Render(row.Value)))
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, cards...), helperStyle.Render("r refresh • tab back to workspace"))
	}
	parts = append(parts, m.helpLine())
	return joinNonEmpty(parts)
}

func (m *model) overlayView() string {
	if _, pending := m.history.Pending(); pending {
		return m.place(m.confirmBox())
	}
	if m.modalOpen {
		return m.place(m.modalBox())
	}
	return ""
}

func (m *model) place(box string) string {
	if m.layout.windowWidth == 0 || m.layout.windowHeight == 0 {
		return box
	}
	return lipgloss.Place(m.layout.windowWidth, m.layout.windowHeight, lipgloss.Center, lipgloss.Center, box)
}

func (m *model) modalWidth() int {
	width := 100
	if m.layout.windowWidth > 0 && m.layout.windowWidth-8 < width {
		width = m.layout.windowWidth - 8
	}
	if width < 30 {
		width = 30
	}
	return width
}

func (m *model) modalBox() string {
	width := m.modalWidth()
	lines := []string{sectionHeaderStyle.Render("All Transcripts")}
	if len(m.history.Transcripts) == 0 {
		lines = append(lines, helperStyle.Render("No transcripts yet"))
	}
	for idx, t := range m.history.Transcripts {
		line := t.Preview(modalPreviewLimit)
		line = truncate.StringWithTail(line, uint(width-4), "…")
		if idx == m.modalCursor {
			lines = append(lines, currentLineStyle.Render("▸ "+line))
		} else {
			lines = append(lines, listItemStyle.Render("  "+line))
		}
	}
	lines = append(lines, "", helperStyle.Render("enter select • d delete • esc/o close"))
	return modalBoxStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// insideBox reports whether a cell lies within box once it is centered on
// the window.
func (m *model) insideBox(box string, x, y int) bool {
	w, h := lipgloss.Size(box)
	left := (m.layout.windowWidth - w) / 2
	top := (m.layout.windowHeight - h) / 2
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	return x >= left && x < left+w && y >= top && y < top+h
}

func (m *model) confirmBox() string {
	pending, _ := m.history.Pending()
	preview := pending.Preview(confirmPreviewLimit)
	actions := buttonDangerStyle.Render("Delete") + "  " + buttonStyle.Render("Cancel")
	hint := "enter/y delete • esc/n cancel"
	if m.history.Deleting {
		actions = buttonDisabledStyle.Render(m.spinner.View() + " Deleting…")
		hint = "waiting for the backend…"
	}
	return confirmBoxStyle.Render(joinLines(
		errorStyle.Bold(true).Render("Delete transcript?"),
		wordwrap.String(preview, 60),
		helperStyle.Render("This removes the transcript and its action items."),
		"",
		actions+"  "+helperStyle.Render(hint),
	))
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
