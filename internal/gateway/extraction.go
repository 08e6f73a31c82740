package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/csheth/minutes/internal/meeting"
)

// Extraction is the canonical result of submitting a transcript. TranscriptID
// is empty when the backend answered with a bare item array.
type Extraction struct {
	TranscriptID string
	Items        []meeting.ActionItem
}

// extractionEnvelope covers the object forms: {id, items} and {transcriptId, items}.
type extractionEnvelope struct {
	ID           string                `json:"id"`
	TranscriptID string                `json:"transcriptId"`
	Items        *[]meeting.ActionItem `json:"items"`
}

func decodeExtraction(raw json.RawMessage) (Extraction, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Extraction{}, fmt.Errorf("%w: empty body", ErrUnexpectedShape)
	}

	switch trimmed[0] {
	case '[':
		var items []meeting.ActionItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Extraction{}, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		return Extraction{Items: normalizeItems(items)}, nil
	case '{':
		var env extractionEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return Extraction{}, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		if env.Items == nil {
			return Extraction{}, fmt.Errorf("%w: object without items", ErrUnexpectedShape)
		}
		id := env.ID
		if id == "" {
			id = env.TranscriptID
		}
		return Extraction{TranscriptID: id, Items: normalizeItems(*env.Items)}, nil
	default:
		return Extraction{}, fmt.Errorf("%w: %.40s", ErrUnexpectedShape, trimmed)
	}
}

func normalizeItems(items []meeting.ActionItem) []meeting.ActionItem {
	out := make([]meeting.ActionItem, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeItem(item))
	}
	return out
}
