package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// mdRenderer is built lazily and rebuilt when the width changes.
var (
	mdRenderer *glamour.TermRenderer
	mdWidth    int
)

// RenderMarkdown renders markdown for the terminal, word-wrapped to width.
// It returns text unchanged if rendering fails.
func RenderMarkdown(text string, width int) string {
	if text == "" {
		return ""
	}
	if width < 20 {
		width = 80
	}

	if mdRenderer == nil || mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		mdRenderer, mdWidth = r, width
	}

	out, err := mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
