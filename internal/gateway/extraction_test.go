package gateway

import (
	"errors"
	"testing"
)

func TestDecodeExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantID  string
		wantLen int
		wantErr bool
	}{
		{"bare array", `[{"id":"i1","task":"a","tags":["x"]}]`, "", 1, false},
		{"object with id", `{"id":"t9","items":[{"id":"i1"},{"id":"i2"}]}`, "t9", 2, false},
		{"object with transcriptId", `{"transcriptId":"t3","items":[]}`, "t3", 0, false},
		{"id wins over transcriptId", `{"id":"a","transcriptId":"b","items":[]}`, "a", 0, false},
		{"leading whitespace", "\n  [ ]", "", 0, false},
		{"object without items", `{"id":"t1"}`, "", 0, true},
		{"scalar", `"ok"`, "", 0, true},
		{"empty", ``, "", 0, true},
		{"malformed array", `[{"id":}]`, "", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := decodeExtraction([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrUnexpectedShape) {
					t.Fatalf("decodeExtraction(%q) err = %v, want ErrUnexpectedShape", tt.body, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeExtraction(%q): %v", tt.body, err)
			}
			if got.TranscriptID != tt.wantID {
				t.Fatalf("TranscriptID = %q, want %q", got.TranscriptID, tt.wantID)
			}
			if len(got.Items) != tt.wantLen {
				t.Fatalf("len(Items) = %d, want %d", len(got.Items), tt.wantLen)
			}
			for _, item := range got.Items {
				if item.Tags == nil {
					t.Fatalf("item %q has nil tags", item.ID)
				}
			}
		})
	}
}
