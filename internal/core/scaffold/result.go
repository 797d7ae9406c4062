package scaffold

import (
	"github.com/fullstack-creator/create-fullstack/internal/template"
)

// StepStatus is the outcome of one pipeline step.
type StepStatus string

const (
	StepDone    StepStatus = "done"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// Step names in execution order.
const (
	StepTarget    = "target"
	StepPreflight = "preflight"
	StepFrontend  = "frontend"
	StepBackend   = "backend"
	StepFiles     = "files"
	StepGit       = "git"
	StepGitHub    = "github"
	StepOpen      = "open"
)

// StepResult records what happened in one step.
type StepResult struct {
	Name   string
	Status StepStatus
	Detail string
	Output string // Tail of collaborator output for failed commands.
}

// Result summarizes a pipeline run. It is returned even when Run fails so
// callers can report what was created before the failure.
type Result struct {
	Root     string
	Dirs     []string // Directories created, relative to Root ("." is Root itself).
	Files    []string // Files written, relative to Root.
	Steps    []StepResult
	Warnings []string
	Services []template.ServiceContext // Services launched by the start scripts.
	RepoURL  string
}

// Step returns the result of the named step.
func (r *Result) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Failed reports whether any step failed.
func (r *Result) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			return true
		}
	}
	return false
}

// Reporter receives step progress.
type Reporter interface {
	StepStarted(name, title string)
	StepFinished(res StepResult)
}

// NopReporter discards progress.
type NopReporter struct{}

func (NopReporter) StepStarted(string, string) {}
func (NopReporter) StepFinished(StepResult)    {}
