package github

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// ghBin caches the resolved gh binary path to avoid repeated exec.LookPath calls.
var (
	ghBinOnce sync.Once
	ghBinPath string
	ghBinErr  error
)

// RepoCreateOptions holds parameters for creating a repository from a
// local directory.
type RepoCreateOptions struct {
	Name        string
	Visibility  models.Visibility // Public or Private.
	Description string
	Remote      string // Remote name added to the local repository; defaults to "origin".
	Push        bool   // Push the local commits after creating the repository.
}

// Client abstracts GitHub CLI (gh) operations for testability.
type Client interface {
	// Available reports whether gh is on PATH.
	Available() bool

	// IsAuthenticated returns ErrGHNotAuthenticated when gh is not logged in.
	IsAuthenticated(ctx context.Context) error

	// RepoCreate creates a repository from the client's root directory and
	// returns its URL.
	RepoCreate(ctx context.Context, opts RepoCreateOptions) (string, error)
}

// execFunc is the function signature for executing gh CLI commands.
// Used for dependency injection in tests.
type execFunc func(ctx context.Context, dir string, args ...string) (string, error)

// ghClient implements Client using the gh CLI binary.
type ghClient struct {
	root   string
	logger *slog.Logger
	// execFn is the function used to execute gh commands.
	// If nil, the package-level execGH function is used.
	execFn   execFunc
	lookPath func(string) (string, error)
}

// Compile-time interface compliance check.
var _ Client = (*ghClient)(nil)

// NewClient creates a GitHub CLI client rooted at the given directory.
func NewClient(root string) *ghClient {
	return &ghClient{
		root:     root,
		logger:   slog.Default().With("module", "github"),
		lookPath: exec.LookPath,
	}
}

// newClientWithExec creates a ghClient with a custom exec function for testing.
func newClientWithExec(root string, fn execFunc) *ghClient {
	c := NewClient(root)
	c.execFn = fn
	c.lookPath = func(string) (string, error) { return "/usr/bin/gh", nil }
	return c
}

// exec runs a gh command using execFn if set, otherwise falls back to execGH.
func (c *ghClient) exec(ctx context.Context, args ...string) (string, error) {
	if c.execFn != nil {
		return c.execFn(ctx, c.root, args...)
	}
	return execGH(ctx, c.root, args...)
}

// Available reports whether the gh binary can be resolved.
func (c *ghClient) Available() bool {
	_, err := c.lookPath("gh")
	return err == nil
}

// IsAuthenticated checks whether the gh CLI is authenticated.
func (c *ghClient) IsAuthenticated(ctx context.Context) error {
	if !c.Available() {
		return fmt.Errorf("check auth: %w", ErrGHNotFound)
	}
	_, err := c.exec(ctx, "auth", "status")
	if err != nil {
		return fmt.Errorf("check auth: %w", ErrGHNotAuthenticated)
	}
	return nil
}

// RepoCreate runs gh repo create with the local directory as source.
func (c *ghClient) RepoCreate(ctx context.Context, opts RepoCreateOptions) (string, error) {
	var flag string
	switch opts.Visibility {
	case models.Public:
		flag = "--public"
	case models.Private:
		flag = "--private"
	default:
		return "", fmt.Errorf("repo create %q: %w", opts.Visibility, ErrInvalidVisibility)
	}

	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}

	args := []string{"repo", "create", opts.Name, flag, "--source", ".", "--remote", remote}
	if opts.Description != "" {
		args = append(args, "--description", opts.Description)
	}
	if opts.Push {
		args = append(args, "--push")
	}

	c.logger.Debug("creating repository", "name", opts.Name, "visibility", opts.Visibility)

	output, err := c.exec(ctx, args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return "", fmt.Errorf("repo create %s: %w", opts.Name, ErrRepoExists)
		}
		return "", fmt.Errorf("repo create %s: %w", opts.Name, err)
	}

	url := extractRepoURL(output)
	c.logger.Info("repository created", "name", opts.Name, "url", url)
	return url, nil
}

// execGH runs a gh CLI command and returns its stdout output.
func execGH(ctx context.Context, dir string, args ...string) (string, error) {
	ghBinOnce.Do(func() {
		ghBinPath, ghBinErr = exec.LookPath("gh")
	})
	if ghBinErr != nil {
		return "", fmt.Errorf("gh lookup: %w", ErrGHNotFound)
	}

	cmd := exec.CommandContext(ctx, ghBinPath, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		if len(args) == 0 {
			return "", fmt.Errorf("gh: %s: %w", errMsg, err)
		}
		return "", fmt.Errorf("gh %s: %s: %w", args[0], errMsg, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}

// extractRepoURL returns the last https URL printed by gh repo create.
// gh prints the URL alone on stdout; remote setup chatter goes to stderr
// but older releases mixed the two.
func extractRepoURL(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if idx := strings.Index(line, "https://"); idx >= 0 {
			return strings.Fields(line[idx:])[0]
		}
	}
	return ""
}
