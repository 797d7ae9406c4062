// Package runner spawns collaborator tools (package managers, SDK CLIs,
// git, gh) and waits for them to finish. Commands run one at a time; the
// caller decides what a failure means for the rest of the run.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for the runner package.
var (
	// ErrToolNotFound indicates the collaborator binary is not on PATH.
	ErrToolNotFound = errors.New("tool not found on PATH")

	// ErrCollaboratorFailed indicates the collaborator exited non-zero.
	ErrCollaboratorFailed = errors.New("collaborator command failed")
)

// maxOutputTail bounds the captured output kept in a CommandError.
const maxOutputTail = 4096

// CommandError describes a collaborator invocation that did not succeed.
type CommandError struct {
	Command string // Command line as typed by a user.
	Dir     string // Working directory.
	Output  string // Tail of combined stdout/stderr.
	Err     error  // Underlying exec error.
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s (in %s): %v", e.Command, e.Dir, e.Err)
}

// Unwrap exposes both ErrCollaboratorFailed and the exec error.
func (e *CommandError) Unwrap() []error {
	return []error{ErrCollaboratorFailed, e.Err}
}

// Runner executes external commands.
type Runner interface {
	// Run executes name with args in dir and returns its combined output.
	// A non-zero exit yields a *CommandError; a missing binary yields
	// an error wrapping ErrToolNotFound.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)

	// LookPath resolves name on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	logger *slog.Logger
	// Echo, when set, receives collaborator output as it is produced.
	Echo io.Writer
}

// Compile-time interface compliance check.
var _ Runner = (*ExecRunner)(nil)

// New creates an ExecRunner. A nil logger discards log output.
func New(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ExecRunner{logger: logger.With("module", "runner")}
}

// LookPath resolves name on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrToolNotFound)
	}
	return path, nil
}

// Run executes a collaborator and waits for it. Stdin is detached and
// CI-style environment variables are set so scaffolders never stop to ask.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	bin, err := r.LookPath(name)
	if err != nil {
		return "", err
	}

	cmdline := CommandLine(name, args...)
	r.logger.Debug("running collaborator", "cmd", cmdline, "dir", dir)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"CI=1",
		"npm_config_yes=true",
		"GIT_TERMINAL_PROMPT=0",
		"DOTNET_CLI_TELEMETRY_OPTOUT=1",
		"DOTNET_NOLOGO=1",
	)

	var out bytes.Buffer
	var w io.Writer = &out
	if r.Echo != nil {
		w = io.MultiWriter(&out, r.Echo)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	if runErr := cmd.Run(); runErr != nil {
		r.logger.Debug("collaborator failed", "cmd", cmdline, "dir", dir, "error", runErr)
		return out.String(), &CommandError{
			Command: cmdline,
			Dir:     dir,
			Output:  tail(out.String(), maxOutputTail),
			Err:     runErr,
		}
	}

	r.logger.Debug("collaborator finished", "cmd", cmdline)
	return strings.TrimRight(out.String(), "\n\r"), nil
}

// CommandLine renders a command for display, quoting arguments with spaces.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// tail keeps at most the last n bytes of s, cut on a rune boundary.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	cut := len(s) - n
	for cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut++
	}
	return "..." + s[cut:]
}
