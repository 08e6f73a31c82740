package insights

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

const styleEnvVar = "MINUTES_MD_STYLE"

var (
	rendererMu sync.Mutex
	renderers  = map[string]*glamour.TermRenderer{}
)

// Render runs markdown through glamour at the given wrap width. An empty
// style is resolved with DetectStyle(os.Stdout). Rendering failures fall back
// to the raw markdown.
func Render(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if style == "" {
		style = DetectStyle(os.Stdout)
	}

	key := style + ":" + strconv.Itoa(width)
	rendererMu.Lock()
	r := renderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return md
		}
		renderers[key] = rr
		r = rr
	}
	rendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// DetectStyle picks a glamour standard style for w. MINUTES_MD_STYLE wins;
// otherwise a writer without colour support gets notty and the rest follow
// the terminal background.
func DetectStyle(w io.Writer) string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(styleEnvVar))) {
	case styles.DarkStyle:
		return styles.DarkStyle
	case styles.LightStyle:
		return styles.LightStyle
	case styles.NoTTYStyle, "plain":
		return styles.NoTTYStyle
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return styles.NoTTYStyle
	}
	out := termenv.NewOutput(w)
	if out.Profile == termenv.Ascii {
		return styles.NoTTYStyle
	}
	if out.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}
