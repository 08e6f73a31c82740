package tui

import (
	"github.com/csheth/minutes/internal/gateway"
	"github.com/csheth/minutes/internal/insights"
	"github.com/csheth/minutes/internal/meeting"
)

type tab int

const (
	tabWorkspace tab = iota
	tabInsights
)

func (t tab) String() string {
	if t == tabInsights {
		return "Insights"
	}
	return "Workspace"
}

type focusArea int

const (
	focusComposer focusArea = iota
	focusHistory
	focusItems
)

type createField int

const (
	createFieldTask createField = iota
	createFieldOwner
	createFieldDue
)

const heroTagline = "Turn meeting transcripts into action items."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4

	recentPreviewLimit  = 60
	modalPreviewLimit   = 100
	confirmPreviewLimit = 80
	recentListLimit     = 5

	composerPlaceholder = "Paste transcript here..."
)

type extractResultMsg struct {
	extraction gateway.Extraction
	err        error
}

type historyResultMsg struct {
	transcripts []meeting.Transcript
	err         error
}

type deleteTranscriptResultMsg struct {
	id  string
	err error
}

type itemOp int

const (
	itemOpToggle itemOp = iota
	itemOpAddTag
	itemOpRemoveTag
)

func (op itemOp) failure() string {
	switch op {
	case itemOpAddTag:
		return "Failed to add tag"
	case itemOpRemoveTag:
		return "Failed to remove tag"
	default:
		return "Failed to update item"
	}
}

type itemUpdatedMsg struct {
	op     itemOp
	itemID string
	item   meeting.ActionItem
	err    error
}

type itemCreatedMsg struct {
	transcriptID string
	item         meeting.ActionItem
	err          error
}

type itemDeletedMsg struct {
	itemID string
	err    error
}

type insightsResultMsg struct {
	generation int
	report     insights.Report
	err        error
}

type clipboardResultMsg struct {
	count int
	err   error
}
