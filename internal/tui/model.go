package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/minutes/internal/gateway"
	"github.com/csheth/minutes/internal/insights"
	"github.com/csheth/minutes/internal/meeting"
	"github.com/csheth/minutes/internal/session"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Backend Backend
	// Timeout bounds each background job. Zero leaves it to the backend.
	Timeout time.Duration
	// Transcript prefills the composer.
	Transcript string
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	return newModel(config)
}

type insightsState struct {
	loading    bool
	generation int
	cancel     context.CancelFunc
	report     *insights.Report
	err        string
}

type model struct {
	config  Config
	backend Backend
	jobs    *jobBus
	keys    keyMap
	help    help.Model
	layout  pageLayout

	composer    textarea.Model
	tagInput    textinput.Model
	createTask  textinput.Model
	createOwner textinput.Model
	createDue   textinput.Model
	spinner     spinner.Model
	viewport    viewport.Model

	ws      *session.Workspace
	history *session.History
	filter  meeting.Filter

	tab           tab
	focus         focusArea
	itemCursor    int
	tagCursor     int
	historyCursor int
	cursorLine    int

	extracting bool
	tagging    bool
	tagTarget  string

	createOpen  bool
	createField createField

	modalOpen      bool
	modalCursor    int
	capture        inputCapture
	releaseModal   func()
	releaseConfirm func()

	insights insightsState
	running  map[string]jobKind

	alert       string
	status      string
	helpVisible bool
}

func newModel(config Config) *model {
	composer := textarea.New()
	composer.Placeholder = composerPlaceholder
	composer.ShowLineNumbers = false
	composer.CharLimit = 0
	// Transcripts routinely run past the default 99 rows.
	composer.MaxHeight = 0
	composer.SetWidth(76)
	composer.SetHeight(5)
	composer.Focus()
	if config.Transcript != "" {
		composer.SetValue(config.Transcript)
	}

	tagInput := textinput.New()
	tagInput.Placeholder = "tag"
	tagInput.Width = 30

	createTask := textinput.New()
	createTask.Placeholder = "Task (required)"
	createTask.Width = 60

	createOwner := textinput.New()
	createOwner.Placeholder = "Owner (optional)"
	createOwner.Width = 40

	createDue := textinput.New()
	createDue.Placeholder = "Due date (optional)"
	createDue.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	if config.Clipboard == nil {
		config.Clipboard = clipboard.WriteAll
	}

	return &model{
		config:      config,
		backend:     config.Backend,
		jobs:        newJobBus(config.Timeout),
		keys:        defaultKeyMap(),
		help:        help.New(),
		layout:      newPageLayout(),
		composer:    composer,
		tagInput:    tagInput,
		createTask:  createTask,
		createOwner: createOwner,
		createDue:   createDue,
		spinner:     spin,
		viewport:    vp,
		ws:          session.NewWorkspace(),
		history:     session.NewHistory(),
		filter:      meeting.FilterAll,
		tab:         tabWorkspace,
		focus:       focusComposer,
		running:     map[string]jobKind{},
		status:      "Paste a transcript and press ctrl+s to extract action items.",
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadHistory())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.running[msg.Snapshot.ID] = msg.Snapshot.Kind
		return m, nil
	case jobResultEnvelope:
		delete(m.running, msg.Snapshot.ID)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case extractResultMsg:
		return m, m.handleExtractResult(msg)
	case historyResultMsg:
		if msg.err != nil {
			m.history.LoadFailed(msg.err)
		} else {
			m.history.Loaded(msg.transcripts)
		}
		m.clampCursors()
		return m, nil
	case deleteTranscriptResultMsg:
		if msg.err != nil {
			m.history.DeleteFailed()
			m.alert = alertText("Failed to delete transcript", msg.err)
			return m, nil
		}
		m.history.Deleted(msg.id, m.ws)
		m.syncConfirmCapture()
		m.clampCursors()
		m.status = "Transcript deleted."
		return m, nil
	case itemUpdatedMsg:
		m.ws.Done(msg.itemID)
		if msg.err != nil {
			m.alert = alertText(msg.op.failure(), msg.err)
			return m, nil
		}
		if msg.op == itemOpToggle {
			m.ws.SetCompleted(msg.itemID, msg.item.Completed)
		} else {
			m.ws.Replace(msg.item)
		}
		m.history.SyncItems(m.ws.TranscriptID, m.ws.Items)
		m.clampCursors()
		return m, nil
	case itemCreatedMsg:
		if msg.err != nil {
			m.alert = alertText("Failed to create item", msg.err)
			return m, nil
		}
		if m.ws.Append(msg.transcriptID, msg.item) {
			m.history.SyncItems(m.ws.TranscriptID, m.ws.Items)
			m.status = "Action item added."
		}
		return m, nil
	case itemDeletedMsg:
		m.ws.Done(msg.itemID)
		if msg.err != nil {
			m.alert = alertText("Failed to delete item", msg.err)
			return m, nil
		}
		if m.ws.Remove(msg.itemID) {
			m.history.SyncItems(m.ws.TranscriptID, m.ws.Items)
		}
		m.clampCursors()
		return m, nil
	case insightsResultMsg:
		if msg.generation != m.insights.generation || m.tab != tabInsights {
			return m, nil
		}
		m.insights.loading = false
		m.insights.cancel = nil
		if msg.err != nil {
			m.insights.err = msg.err.Error()
			return m, nil
		}
		report := msg.report
		m.insights.report = &report
		m.insights.err = ""
		return m, nil
	case clipboardResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Copied %d item(s) to the clipboard.", msg.count)
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) busy() bool {
	return m.extracting || m.history.Loading || m.history.Deleting || m.insights.loading
}

func (m *model) loadHistory() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	m.history.BeginLoad()
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindHistory, historyJob(m.backend)))
}

func (m *model) handleExtractResult(msg extractResultMsg) tea.Cmd {
	m.extracting = false
	if msg.err != nil {
		m.alert = alertText("Failed to extract actions", msg.err)
		return nil
	}
	m.ws.Load(msg.extraction)
	m.itemCursor = 0
	m.tagCursor = 0
	m.focusArea(focusItems)
	m.status = fmt.Sprintf("Extracted %d action item(s).", len(msg.extraction.Items))
	if !m.ws.Active() {
		m.status += " The backend returned no transcript id, so new items cannot be added."
	}
	return m.loadHistory()
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.releaseAll()
		return m, tea.Quit
	}
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}
	if _, pending := m.history.Pending(); pending {
		return m, m.handleConfirmKey(msg)
	}
	if m.modalOpen {
		return m, m.handleModalKey(msg)
	}
	if m.tagging {
		return m, m.handleTagKey(msg)
	}
	if m.tab == tabWorkspace && m.createOpen {
		return m, m.handleCreateKey(msg)
	}
	if key.Matches(msg, m.keys.SwitchTab) {
		return m, m.switchTab()
	}
	if m.tab == tabInsights {
		return m.handleInsightsKey(msg)
	}
	if m.focus == focusComposer {
		return m, m.handleComposerKey(msg)
	}
	return m.handleWorkspaceKey(msg)
}

func (m *model) handleComposerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Extract):
		return m.startExtract()
	case key.Matches(msg, m.keys.Leave):
		m.focusArea(focusItems)
		return nil
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return cmd
}

func (m *model) startExtract() tea.Cmd {
	if m.extracting {
		return nil
	}
	text := m.composer.Value()
	if strings.TrimSpace(text) == "" {
		m.alert = "Paste a transcript before extracting."
		return nil
	}
	if m.backend == nil {
		return nil
	}
	m.extracting = true
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindExtract, extractJob(m.backend, text)))
}

func (m *model) handleWorkspaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.releaseAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Composer):
		return m, m.focusArea(focusComposer)
	case key.Matches(msg, m.keys.History):
		m.focusArea(focusHistory)
	case key.Matches(msg, m.keys.Items):
		m.focusArea(focusItems)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.itemCursor = 0
		m.tagCursor = 0
	case key.Matches(msg, m.keys.Transcripts):
		m.openModal()
	case key.Matches(msg, m.keys.Create):
		return m, m.openCreateForm()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyVisibleItems()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
	case m.focus == focusHistory && key.Matches(msg, m.keys.Select):
		if t, ok := m.recentAt(m.historyCursor); ok {
			m.selectTranscript(t)
		}
	case m.focus == focusHistory && key.Matches(msg, m.keys.Delete):
		if t, ok := m.recentAt(m.historyCursor); ok {
			m.requestDelete(t)
		}
	case m.focus == focusItems && key.Matches(msg, m.keys.Toggle):
		return m, m.toggleCurrent()
	case m.focus == focusItems && key.Matches(msg, m.keys.AddTag):
		return m, m.openTagInput()
	case m.focus == focusItems && key.Matches(msg, m.keys.RemoveTag):
		return m, m.removeCurrentTag()
	case m.focus == focusItems && key.Matches(msg, m.keys.TagLeft):
		m.moveTagCursor(-1)
	case m.focus == focusItems && key.Matches(msg, m.keys.TagRight):
		m.moveTagCursor(1)
	case m.focus == focusItems && key.Matches(msg, m.keys.DeleteItem):
		return m, m.deleteCurrentItem()
	default:
		if m.capture.active() {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) focusArea(area focusArea) tea.Cmd {
	m.focus = area
	if area == focusComposer {
		return m.composer.Focus()
	}
	m.composer.Blur()
	return nil
}

func (m *model) visibleItems() []meeting.ActionItem {
	return m.filter.Apply(m.ws.Items)
}

func (m *model) currentItem() (meeting.ActionItem, bool) {
	visible := m.visibleItems()
	if m.itemCursor < 0 || m.itemCursor >= len(visible) {
		return meeting.ActionItem{}, false
	}
	return visible[m.itemCursor], true
}

func (m *model) recent() []meeting.Transcript {
	list := m.history.Transcripts
	if len(list) > recentListLimit {
		list = list[:recentListLimit]
	}
	return list
}

func (m *model) recentAt(idx int) (meeting.Transcript, bool) {
	list := m.recent()
	if idx < 0 || idx >= len(list) {
		return meeting.Transcript{}, false
	}
	return list[idx], true
}

func (m *model) moveCursor(delta int) {
	switch m.focus {
	case focusHistory:
		m.historyCursor = clampIndex(m.historyCursor+delta, len(m.recent()))
	case focusItems:
		m.itemCursor = clampIndex(m.itemCursor+delta, len(m.visibleItems()))
		m.tagCursor = 0
	}
}

func (m *model) moveTagCursor(delta int) {
	item, ok := m.currentItem()
	if !ok {
		return
	}
	m.tagCursor = clampIndex(m.tagCursor+delta, len(item.Tags))
}

func (m *model) clampCursors() {
	m.itemCursor = clampIndex(m.itemCursor, len(m.visibleItems()))
	if item, ok := m.currentItem(); ok {
		m.tagCursor = clampIndex(m.tagCursor, len(item.Tags))
	} else {
		m.tagCursor = 0
	}
	m.historyCursor = clampIndex(m.historyCursor, len(m.recent()))
	m.modalCursor = clampIndex(m.modalCursor, len(m.history.Transcripts))
}

func clampIndex(idx, length int) int {
	if length <= 0 || idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}

func (m *model) selectTranscript(t meeting.Transcript) {
	m.ws.Select(t)
	m.itemCursor = 0
	m.tagCursor = 0
	m.focusArea(focusItems)
	m.status = fmt.Sprintf("Showing %d item(s) from %q.", len(t.Items), t.Preview(30))
}

func (m *model) beginItemMutation(id string) bool {
	if m.backend == nil {
		return false
	}
	if err := m.ws.Begin(id); err != nil {
		if errors.Is(err, session.ErrBusy) {
			m.status = "That item is still saving; try again in a moment."
		}
		return false
	}
	return true
}

func (m *model) toggleCurrent() tea.Cmd {
	item, ok := m.currentItem()
	if !ok || !m.beginItemMutation(item.ID) {
		return nil
	}
	patch := gateway.CompletedPatch(!item.Completed)
	return m.jobs.Start(jobKindUpdateItem, updateItemJob(m.backend, itemOpToggle, item.ID, patch))
}

func (m *model) openTagInput() tea.Cmd {
	item, ok := m.currentItem()
	if !ok {
		return nil
	}
	m.tagging = true
	m.tagTarget = item.ID
	m.tagInput.SetValue("")
	return m.tagInput.Focus()
}

func (m *model) closeTagInput() {
	m.tagging = false
	m.tagTarget = ""
	m.tagInput.SetValue("")
	m.tagInput.Blur()
}

func (m *model) handleTagKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeTagInput()
		return nil
	case tea.KeyEnter:
		id, value := m.tagTarget, m.tagInput.Value()
		m.closeTagInput()
		tags, err := m.ws.PlanAddTag(id, value)
		if err != nil {
			return nil
		}
		if !m.beginItemMutation(id) {
			return nil
		}
		return m.jobs.Start(jobKindUpdateItem, updateItemJob(m.backend, itemOpAddTag, id, gateway.TagsPatch(tags)))
	}
	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return cmd
}

func (m *model) removeCurrentTag() tea.Cmd {
	item, ok := m.currentItem()
	if !ok {
		return nil
	}
	if len(item.Tags) == 0 {
		m.status = "This item has no tags."
		return nil
	}
	tag := item.Tags[clampIndex(m.tagCursor, len(item.Tags))]
	tags, err := m.ws.PlanRemoveTag(item.ID, tag)
	if err != nil || !m.beginItemMutation(item.ID) {
		return nil
	}
	return m.jobs.Start(jobKindUpdateItem, updateItemJob(m.backend, itemOpRemoveTag, item.ID, gateway.TagsPatch(tags)))
}

func (m *model) deleteCurrentItem() tea.Cmd {
	item, ok := m.currentItem()
	if !ok || !m.beginItemMutation(item.ID) {
		return nil
	}
	return m.jobs.Start(jobKindDeleteItem, deleteItemJob(m.backend, item.ID))
}

func (m *model) copyVisibleItems() tea.Cmd {
	visible := m.visibleItems()
	if len(visible) == 0 {
		m.status = "Nothing to copy."
		return nil
	}
	return m.jobs.Start(jobKindClipboard, clipboardJob(m.config.Clipboard, visible))
}

func (m *model) openCreateForm() tea.Cmd {
	m.createOpen = true
	m.createField = createFieldTask
	m.composer.Blur()
	m.createOwner.Blur()
	m.createDue.Blur()
	return m.createTask.Focus()
}

func (m *model) closeCreateForm() {
	m.createOpen = false
	for _, input := range []*textinput.Model{&m.createTask, &m.createOwner, &m.createDue} {
		input.SetValue("")
		input.Blur()
	}
}

// createEnabled mirrors the submit control: it needs an active transcript and
// a non-blank task.
func (m *model) createEnabled() bool {
	return m.ws.Active() && strings.TrimSpace(m.createTask.Value()) != ""
}

func (m *model) createInput(field createField) *textinput.Model {
	switch field {
	case createFieldOwner:
		return &m.createOwner
	case createFieldDue:
		return &m.createDue
	default:
		return &m.createTask
	}
}

func (m *model) handleCreateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeCreateForm()
		return nil
	case tea.KeyTab, tea.KeyDown, tea.KeyShiftTab, tea.KeyUp:
		m.createInput(m.createField).Blur()
		step := 1
		if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
			step = 2
		}
		m.createField = (m.createField + createField(step)) % 3
		return m.createInput(m.createField).Focus()
	case tea.KeyEnter:
		if !m.ws.Active() {
			m.alert = session.ErrNoTranscript.Error()
			return nil
		}
		if !m.createEnabled() {
			return nil
		}
		req, err := m.ws.PlanCreate(m.createTask.Value(), m.createOwner.Value(), m.createDue.Value())
		if err != nil {
			m.status = err.Error()
			return nil
		}
		m.closeCreateForm()
		if m.backend == nil {
			return nil
		}
		return m.jobs.Start(jobKindCreateItem, createItemJob(m.backend, req))
	}
	input := m.createInput(m.createField)
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return cmd
}

func (m *model) openModal() {
	if m.modalOpen {
		return
	}
	m.modalOpen = true
	m.modalCursor = clampIndex(m.historyCursor, len(m.history.Transcripts))
	m.releaseModal = m.capture.acquire()
}

func (m *model) closeModal() {
	if !m.modalOpen {
		return
	}
	m.modalOpen = false
	if m.releaseModal != nil {
		m.releaseModal()
		m.releaseModal = nil
	}
}

func (m *model) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.Transcripts):
		m.closeModal()
	case key.Matches(msg, m.keys.Up):
		m.modalCursor = clampIndex(m.modalCursor-1, len(m.history.Transcripts))
	case key.Matches(msg, m.keys.Down):
		m.modalCursor = clampIndex(m.modalCursor+1, len(m.history.Transcripts))
	case key.Matches(msg, m.keys.Select):
		if m.modalCursor < len(m.history.Transcripts) {
			m.selectTranscript(m.history.Transcripts[m.modalCursor])
			m.closeModal()
		}
	case key.Matches(msg, m.keys.Delete):
		if m.modalCursor < len(m.history.Transcripts) {
			m.requestDelete(m.history.Transcripts[m.modalCursor])
		}
	}
	return nil
}

func (m *model) requestDelete(t meeting.Transcript) {
	if m.history.RequestDelete(t) {
		m.syncConfirmCapture()
	}
}

// syncConfirmCapture holds input capture exactly while a delete confirmation
// is pending.
func (m *model) syncConfirmCapture() {
	_, pending := m.history.Pending()
	switch {
	case pending && m.releaseConfirm == nil:
		m.releaseConfirm = m.capture.acquire()
	case !pending && m.releaseConfirm != nil:
		m.releaseConfirm()
		m.releaseConfirm = nil
	}
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id, ok := m.history.BeginDelete()
		if !ok || m.backend == nil {
			return nil
		}
		return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindDeleteTranscript, deleteTranscriptJob(m.backend, id)))
	case key.Matches(msg, m.keys.Cancel):
		m.history.CancelDelete()
		m.syncConfirmCapture()
	}
	return nil
}

func (m *model) releaseAll() {
	m.closeModal()
	if m.releaseConfirm != nil {
		m.releaseConfirm()
		m.releaseConfirm = nil
	}
	m.stopInsights()
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	if _, pending := m.history.Pending(); pending {
		if press && !m.history.Deleting && !m.insideBox(m.confirmBox(), msg.X, msg.Y) {
			m.history.CancelDelete()
			m.syncConfirmCapture()
		}
		return m, nil
	}
	if m.modalOpen {
		if press && !m.insideBox(m.modalBox(), msg.X, msg.Y) {
			m.closeModal()
		}
		return m, nil
	}
	if m.capture.active() || m.tab != tabWorkspace {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) switchTab() tea.Cmd {
	if m.tab == tabWorkspace {
		m.tab = tabInsights
		return m.startInsights()
	}
	m.tab = tabWorkspace
	m.stopInsights()
	return nil
}

func (m *model) startInsights() tea.Cmd {
	m.stopInsights()
	m.insights.generation++
	if m.backend == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.insights.cancel = cancel
	m.insights.loading = true
	m.insights.err = ""
	runner := insightsJob(m.backend, m.insights.generation)
	return tea.Batch(m.spinner.Tick, m.jobs.StartWithContext(ctx, jobKindInsights, runner))
}

func (m *model) stopInsights() {
	if m.insights.cancel != nil {
		m.insights.cancel()
		m.insights.cancel = nil
	}
	m.insights.loading = false
}

func (m *model) handleInsightsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.releaseAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m, m.startInsights()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
	}
	return m, nil
}
