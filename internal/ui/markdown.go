package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// markdownWidth is the word-wrap column for rendered markdown.
const markdownWidth = 80

// RenderMarkdown renders md for the terminal. With color disabled the
// "notty" style is used, which keeps the structure but emits no escapes.
func (t *Theme) RenderMarkdown(md string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(markdownWidth)}
	if t.NoColor {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
