// Package runnertest provides a scriptable runner.Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fullstack-creator/create-fullstack/internal/runner"
)

// Call records one invocation seen by a Fake.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return runner.CommandLine(c.Name, c.Args...)
}

// Handler simulates a collaborator. It may create files in dir to mimic
// what the real tool would produce.
type Handler func(dir string, args []string) (string, error)

// Fake is a runner.Runner that never spawns processes. Tools listed in
// Missing are reported as absent; Handlers are matched by command prefix
// (e.g. "npm create" or "git"), longest prefix first.
type Fake struct {
	mu       sync.Mutex
	Missing  map[string]bool
	Handlers map[string]Handler
	Fail     map[string]bool
	calls    []Call
}

// Compile-time interface compliance check.
var _ runner.Runner = (*Fake)(nil)

// New returns an empty Fake where every tool exists and succeeds.
func New() *Fake {
	return &Fake{
		Missing:  map[string]bool{},
		Handlers: map[string]Handler{},
		Fail:     map[string]bool{},
	}
}

// LookPath reports tools in Missing as absent.
func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[name] {
		return "", fmt.Errorf("%s: %w", name, runner.ErrToolNotFound)
	}
	return "/usr/bin/" + name, nil
}

// Run records the call and dispatches to the matching handler. Commands
// whose prefix is in Fail return a *runner.CommandError.
func (f *Fake) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	if _, err := f.LookPath(name); err != nil {
		return "", err
	}

	f.mu.Lock()
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	f.calls = append(f.calls, call)
	line := call.String()
	var failed bool
	for prefix := range f.Fail {
		if strings.HasPrefix(line, prefix) {
			failed = true
			break
		}
	}
	handler := f.match(line)
	f.mu.Unlock()

	if failed {
		return "simulated failure", &runner.CommandError{
			Command: line,
			Dir:     dir,
			Output:  "simulated failure",
			Err:     fmt.Errorf("exit status 1"),
		}
	}
	if handler != nil {
		return handler(dir, args)
	}
	return "", nil
}

func (f *Fake) match(line string) Handler {
	var best string
	for prefix := range f.Handlers {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return nil
	}
	return f.Handlers[best]
}

// Calls returns a copy of every recorded call.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Lines returns every recorded call rendered as a command line.
func (f *Fake) Lines() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Ran reports whether a call starting with prefix was recorded.
func (f *Fake) Ran(prefix string) bool {
	for _, line := range f.Lines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
