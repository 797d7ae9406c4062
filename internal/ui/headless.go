package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// HeadlessManager decides whether the UI runs without a TTY, in which
// case prompts fall back to plain line input and spinners to log lines.
type HeadlessManager struct {
	forced *bool
	in     *os.File
}

// NewHeadlessManager creates a HeadlessManager that detects
// headless mode from the TTY state of os.Stdin.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{in: os.Stdin}
}

// IsHeadless returns true when the UI should operate in headless mode.
// ForceHeadless overrides TTY detection.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	in := h.in
	if in == nil {
		in = os.Stdin
	}
	return !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd())
}

// ForceHeadless overrides TTY detection. Pass true to force headless mode,
// or false to force interactive mode regardless of TTY state.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// IsTerminal reports whether w is a terminal. Writers that are not files
// (buffers in tests) are never terminals.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
