package tuitest

import (
	"bytes"
	"io"
)

// Background selects the colour the fake terminal reports for OSC 11
// queries, which drives lipgloss and termenv dark/light detection.
type Background int

const (
	BackgroundDark Background = iota
	BackgroundLight
)

type termReply struct {
	query []byte
	reply []byte
}

// terminalResponder answers the capability queries a Bubble Tea program
// sends at startup so it does not stall waiting on a real terminal.
type terminalResponder struct {
	w       io.Writer
	buf     []byte
	replies []termReply
}

func newTerminalResponder(w io.Writer, bg Background) *terminalResponder {
	fg, back := "cccc/cccc/cccc", "0000/0000/0000"
	if bg == BackgroundLight {
		fg, back = "0000/0000/0000", "ffff/ffff/ffff"
	}
	replies := []termReply{{query: []byte("\x1b[6n"), reply: []byte("\x1b[1;1R")}}
	for _, term := range []string{"\x07", "\x1b\\"} {
		replies = append(replies,
			termReply{query: []byte("\x1b]10;?" + term), reply: []byte("\x1b]10;rgb:" + fg + term)},
			termReply{query: []byte("\x1b]11;?" + term), reply: []byte("\x1b]11;rgb:" + back + term)},
		)
	}
	return &terminalResponder{w: w, buf: make([]byte, 0, 128), replies: replies}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	// A short tail catches queries split across reads.
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerOne replies to the earliest pending query and reports whether it
// found one.
func (tr *terminalResponder) answerOne() bool {
	first, at := -1, len(tr.buf)
	for i, r := range tr.replies {
		if idx := bytes.Index(tr.buf, r.query); idx >= 0 && idx < at {
			first, at = i, idx
		}
	}
	if first < 0 {
		return false
	}
	r := tr.replies[first]
	tr.buf = tr.buf[at+len(r.query):]
	_, _ = tr.w.Write(r.reply)
	return true
}
