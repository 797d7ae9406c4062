package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fullstack-creator/create-fullstack/internal/core/scaffold"
	"github.com/fullstack-creator/create-fullstack/internal/ui"
)

// outputTailLines caps how much collaborator output a failed step prints.
const outputTailLines = 12

// stepReporter shows a spinner while a pipeline step runs and a status line
// once it finishes.
type stepReporter struct {
	mu       sync.Mutex
	w        io.Writer
	theme    *ui.Theme
	progress ui.Progress
	spinner  ui.Spinner
}

var _ scaffold.Reporter = (*stepReporter)(nil)

func newStepReporter(w io.Writer, th *ui.Theme, p ui.Progress) *stepReporter {
	return &stepReporter{w: w, theme: th, progress: p}
}

func (r *stepReporter) StepStarted(_, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.spinner = r.progress.Spinner(title + "...")
}

func (r *stepReporter) StepFinished(s scaffold.StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()

	th := r.theme
	var line string
	switch s.Status {
	case scaffold.StepDone:
		line = fmt.Sprintf("%s %s", th.SymSuccess(), s.Name)
	case scaffold.StepSkipped:
		line = fmt.Sprintf("%s %s skipped", th.SymSkipped(), s.Name)
	default:
		line = fmt.Sprintf("%s %s failed", th.SymError(), s.Name)
	}
	if s.Detail != "" {
		line += " " + th.Muted("("+s.Detail+")")
	}
	_, _ = fmt.Fprintln(r.w, line)

	if s.Status == scaffold.StepFailed && s.Output != "" {
		for _, l := range lastLines(s.Output, outputTailLines) {
			_, _ = fmt.Fprintln(r.w, "    "+th.Muted(l))
		}
	}
}

// stop halts a spinner left running by an interrupted step.
func (r *stepReporter) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *stepReporter) stopLocked() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}

func lastLines(s string, n int) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
