package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveDirectory turns the wizard's directory answer into an absolute
// path. An empty answer resolves to the current working directory and a
// leading "~" expands to the user's home directory. A path naming an
// existing file is rejected with ErrTargetNotDir.
func ResolveDirectory(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return cwd, nil
	}

	if dir == "~" || strings.HasPrefix(dir, "~/") || strings.HasPrefix(dir, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path %q: %w", dir, err)
	}
	// A missing directory is created later; an existing file never works.
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrTargetNotDir)
	}
	return abs, nil
}

// CheckTarget verifies that root can receive a new project: it must either
// not exist or be an empty directory. Existing content is never overwritten.
func CheckTarget(root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrTargetNotDir)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read %s: %w", root, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%s contains %d entries: %w", root, len(entries), ErrTargetNotEmpty)
	}
	return nil
}
