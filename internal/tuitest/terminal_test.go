package tuitest

import (
	"bytes"
	"testing"
)

func TestTerminalResponderAnswersInOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		bg   Background
		in   []string
		want string
	}{
		{
			name: "dark background",
			bg:   BackgroundDark,
			in:   []string{"\x1b]11;?\x07"},
			want: "\x1b]11;rgb:0000/0000/0000\x07",
		},
		{
			name: "light background with st terminator",
			bg:   BackgroundLight,
			in:   []string{"\x1b]11;?\x1b\\"},
			want: "\x1b]11;rgb:ffff/ffff/ffff\x1b\\",
		},
		{
			name: "query split across reads",
			bg:   BackgroundDark,
			in:   []string{"hello \x1b[", "6n then \x1b]10;?\x07"},
			want: "\x1b[1;1R\x1b]10;rgb:cccc/cccc/cccc\x07",
		},
		{
			name: "no queries",
			in:   []string{"plain output"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			tr := newTerminalResponder(&out, tt.bg)
			for _, chunk := range tt.in {
				tr.Process([]byte(chunk))
			}
			if got := out.String(); got != tt.want {
				t.Fatalf("replies = %q, want %q", got, tt.want)
			}
		})
	}
}
