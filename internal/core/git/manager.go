package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = 30 * time.Second

// Repository is the subset of git the project pipeline needs.
type Repository interface {
	Init(ctx context.Context) error
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	HasCommits(ctx context.Context) bool
	Root() string
}

// Compile-time interface compliance check.
var _ Repository = (*Manager)(nil)

// Manager runs git commands in one project directory.
type Manager struct {
	root          string
	defaultBranch string
	logger        *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		m.logger = l.With("module", "git")
	}
}

// WithDefaultBranch names the initial branch created by Init.
func WithDefaultBranch(branch string) Option {
	return func(m *Manager) { m.defaultBranch = strings.TrimSpace(branch) }
}

// NewManager returns a Manager rooted at dir. The directory does not need
// to be a repository yet.
func NewManager(dir string, opts ...Option) (*Manager, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", dir, err)
	}
	m := &Manager{
		root:   filepath.Clean(abs),
		logger: slog.Default().With("module", "git"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Root returns the absolute repository directory.
func (m *Manager) Root() string { return m.root }

// Init creates an empty repository.
func (m *Manager) Init(ctx context.Context) error {
	args := []string{"init"}
	if m.defaultBranch != "" {
		args = append(args, "--initial-branch="+m.defaultBranch)
	}
	if _, err := m.run(ctx, args...); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	m.logger.Debug("repository initialized", "root", m.root, "branch", m.defaultBranch)
	return nil
}

// AddAll stages every file in the working tree.
func (m *Manager) AddAll(ctx context.Context) error {
	if _, err := m.run(ctx, "add", "."); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// Commit records the staged changes. It returns ErrNothingToCommit when
// nothing is staged.
func (m *Manager) Commit(ctx context.Context, message string) error {
	staged, err := m.run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	if staged == "" {
		return fmt.Errorf("commit: %w", ErrNothingToCommit)
	}
	if _, err := m.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	m.logger.Debug("commit created", "message", message, "files", strings.Count(staged, "\n")+1)
	return nil
}

// HasCommits reports whether HEAD resolves to a commit.
func (m *Manager) HasCommits(ctx context.Context) bool {
	_, err := m.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil
}

func (m *Manager) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()
	return execGit(ctx, m.root, args...)
}

// execGit executes a git command in dir and returns stdout.
// It sets GIT_TERMINAL_PROMPT=0 and LC_ALL=C for consistent behavior.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("system git lookup: %w", ErrSystemGitNotFound)
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"LC_ALL=C",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if len(args) > 0 {
			return "", fmt.Errorf("git %s: %s: %w", args[0], stderrStr, err)
		}
		return "", fmt.Errorf("git: %s: %w", stderrStr, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}
