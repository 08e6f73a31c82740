package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/minutes/internal/gateway"
	"github.com/csheth/minutes/internal/insights"
	"github.com/csheth/minutes/internal/meeting"
)

// Backend is the slice of the gateway the views talk to.
type Backend interface {
	ListTranscripts(ctx context.Context) ([]meeting.Transcript, error)
	Extract(ctx context.Context, text string) (gateway.Extraction, error)
	DeleteTranscript(ctx context.Context, id string) error
	CreateItem(ctx context.Context, item gateway.NewItem) (meeting.ActionItem, error)
	UpdateItem(ctx context.Context, id string, patch gateway.ItemPatch) (meeting.ActionItem, error)
	DeleteItem(ctx context.Context, id string) error
}

func extractJob(backend Backend, text string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		ex, err := backend.Extract(ctx, text)
		return extractResultMsg{extraction: ex, err: err}, err
	}
}

func historyJob(backend Backend) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		list, err := backend.ListTranscripts(ctx)
		return historyResultMsg{transcripts: list, err: err}, err
	}
}

func deleteTranscriptJob(backend Backend, id string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		err := backend.DeleteTranscript(ctx, id)
		return deleteTranscriptResultMsg{id: id, err: err}, err
	}
}

func updateItemJob(backend Backend, op itemOp, id string, patch gateway.ItemPatch) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		item, err := backend.UpdateItem(ctx, id, patch)
		return itemUpdatedMsg{op: op, itemID: id, item: item, err: err}, err
	}
}

func createItemJob(backend Backend, req gateway.NewItem) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		item, err := backend.CreateItem(ctx, req)
		return itemCreatedMsg{transcriptID: req.TranscriptID, item: item, err: err}, err
	}
}

func deleteItemJob(backend Backend, id string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		err := backend.DeleteItem(ctx, id)
		return itemDeletedMsg{itemID: id, err: err}, err
	}
}

func insightsJob(backend Backend, generation int) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		list, err := backend.ListTranscripts(ctx)
		if err != nil {
			return insightsResultMsg{generation: generation, err: err}, err
		}
		return insightsResultMsg{generation: generation, report: insights.Compute(list)}, nil
	}
}

func clipboardJob(write func(string) error, items []meeting.ActionItem) jobRunner {
	md := meeting.TaskList(items)
	count := len(items)
	return func(context.Context) (tea.Msg, error) {
		err := write(md)
		return clipboardResultMsg{count: count, err: err}, err
	}
}

func alertText(action string, err error) string {
	if err == nil {
		return action
	}
	return fmt.Sprintf("%s: %v", action, err)
}
