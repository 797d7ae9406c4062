// Package ui renders terminal output: colors, cards, spinners and
// markdown. Everything degrades to plain text when stdout is not a
// terminal or colors are disabled.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the brand colors as hex strings (dark background values).
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
	Border    string
	Text      string
}

// Theme carries the palette and whether styling is disabled.
type Theme struct {
	Colors  Palette
	NoColor bool
}

// DefaultPalette is the create-fullstack color scheme.
var DefaultPalette = Palette{
	Primary:   "#38BDF8",
	Secondary: "#A78BFA",
	Success:   "#10B981",
	Warning:   "#F59E0B",
	Error:     "#EF4444",
	Muted:     "#6B7280",
	Border:    "#4B5563",
	Text:      "#F9FAFB",
}

// NewTheme returns the default theme.
func NewTheme(noColor bool) *Theme {
	return &Theme{Colors: DefaultPalette, NoColor: noColor}
}

// light maps each dark-background color to its light-background variant.
var light = map[string]string{
	"#38BDF8": "#0369A1",
	"#A78BFA": "#5B21B6",
	"#10B981": "#059669",
	"#F59E0B": "#D97706",
	"#EF4444": "#DC2626",
	"#6B7280": "#9CA3AF",
	"#4B5563": "#D1D5DB",
	"#F9FAFB": "#111827",
}

// Adaptive returns an adaptive lipgloss color for a palette entry.
func Adaptive(dark string) lipgloss.AdaptiveColor {
	l, ok := light[dark]
	if !ok {
		l = dark
	}
	return lipgloss.AdaptiveColor{Light: l, Dark: dark}
}

func (t *Theme) style(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(Adaptive(color))
}

// Primary renders s in the primary color, bold.
func (t *Theme) Primary(s string) string { return t.style(t.Colors.Primary).Bold(!t.NoColor).Render(s) }

// Success renders s in the success color.
func (t *Theme) Success(s string) string { return t.style(t.Colors.Success).Render(s) }

// Warn renders s in the warning color.
func (t *Theme) Warn(s string) string { return t.style(t.Colors.Warning).Render(s) }

// Error renders s in the error color.
func (t *Theme) Error(s string) string { return t.style(t.Colors.Error).Render(s) }

// Muted renders s in the muted color.
func (t *Theme) Muted(s string) string { return t.style(t.Colors.Muted).Render(s) }

// Status symbols.
func (t *Theme) SymSuccess() string { return t.Success("✓") }
func (t *Theme) SymWarning() string { return t.Warn("!") }
func (t *Theme) SymError() string   { return t.Error("✗") }
func (t *Theme) SymSkipped() string { return t.Muted("-") }

func (t *Theme) cardStyle() lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	if !t.NoColor {
		s = s.BorderForeground(Adaptive(t.Colors.Border))
	}
	return s
}

// Card renders a bordered box with a bold title and body lines.
func (t *Theme) Card(title string, lines ...string) string {
	var body strings.Builder
	body.WriteString(t.Primary(title))
	if len(lines) > 0 {
		body.WriteString("\n\n")
		body.WriteString(strings.Join(lines, "\n"))
	}
	return t.cardStyle().Render(body.String())
}

// SuccessCard renders a card whose title is prefixed with a check mark.
func (t *Theme) SuccessCard(title string, lines ...string) string {
	var body strings.Builder
	body.WriteString(t.SymSuccess() + " " + title)
	if len(lines) > 0 {
		body.WriteString("\n\n")
		body.WriteString(strings.Join(lines, "\n"))
	}
	return t.cardStyle().Render(body.String())
}
