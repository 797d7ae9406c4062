package github

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/fullstack-creator/create-fullstack/pkg/models"
)

// newTestClient creates a ghClient with a mock exec function for testing.
func newTestClient(fn execFunc) *ghClient {
	return newClientWithExec("/tmp/test-project", fn)
}

func TestIsAuthenticated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fn      execFunc
		wantErr error
	}{
		{
			name: "logged in",
			fn: func(_ context.Context, _ string, args ...string) (string, error) {
				if len(args) >= 2 && args[0] == "auth" && args[1] == "status" {
					return "Logged in", nil
				}
				return "", fmt.Errorf("unexpected args: %v", args)
			},
		},
		{
			name: "logged out",
			fn: func(_ context.Context, _ string, _ ...string) (string, error) {
				return "", errors.New("exit status 1")
			},
			wantErr: ErrGHNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := newTestClient(tt.fn).IsAuthenticated(context.Background())
			if tt.wantErr == nil && err != nil {
				t.Errorf("IsAuthenticated() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("IsAuthenticated() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsAuthenticated_NotInstalled(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(func(context.Context, string, ...string) (string, error) {
		called = true
		return "", nil
	})
	client.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	if client.Available() {
		t.Error("Available() = true, want false")
	}
	if err := client.IsAuthenticated(context.Background()); !errors.Is(err, ErrGHNotFound) {
		t.Errorf("IsAuthenticated() error = %v, want ErrGHNotFound", err)
	}
	if called {
		t.Error("gh should not be executed when it is not installed")
	}
}

func TestRepoCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     RepoCreateOptions
		wantArgs []string
	}{
		{
			name: "public with push",
			opts: RepoCreateOptions{Name: "shop", Visibility: models.Public, Push: true},
			wantArgs: []string{"repo", "create", "shop", "--public", "--source", ".",
				"--remote", "origin", "--push"},
		},
		{
			name: "private with description",
			opts: RepoCreateOptions{Name: "shop", Visibility: models.Private, Description: "demo", Remote: "upstream"},
			wantArgs: []string{"repo", "create", "shop", "--private", "--source", ".",
				"--remote", "upstream", "--description", "demo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotArgs []string
			var gotDir string
			client := newTestClient(func(_ context.Context, dir string, args ...string) (string, error) {
				gotDir = dir
				gotArgs = args
				return "https://github.com/octo/shop", nil
			})

			url, err := client.RepoCreate(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("RepoCreate() error = %v", err)
			}
			if url != "https://github.com/octo/shop" {
				t.Errorf("url = %q", url)
			}
			if gotDir != "/tmp/test-project" {
				t.Errorf("dir = %q", gotDir)
			}
			if !slices.Equal(gotArgs, tt.wantArgs) {
				t.Errorf("args = %v\nwant %v", gotArgs, tt.wantArgs)
			}
		})
	}
}

func TestRepoCreate_Errors(t *testing.T) {
	t.Parallel()

	t.Run("skip visibility", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(func(context.Context, string, ...string) (string, error) {
			t.Error("gh should not run")
			return "", nil
		})
		_, err := client.RepoCreate(context.Background(), RepoCreateOptions{Name: "x", Visibility: models.Skip})
		if !errors.Is(err, ErrInvalidVisibility) {
			t.Errorf("error = %v, want ErrInvalidVisibility", err)
		}
	})

	t.Run("name taken", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(func(context.Context, string, ...string) (string, error) {
			return "", errors.New("gh repo: GraphQL: Name already exists on this account (createRepository): exit status 1")
		})
		_, err := client.RepoCreate(context.Background(), RepoCreateOptions{Name: "x", Visibility: models.Public})
		if !errors.Is(err, ErrRepoExists) {
			t.Errorf("error = %v, want ErrRepoExists", err)
		}
	})

	t.Run("other failure", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("network unreachable")
		client := newTestClient(func(context.Context, string, ...string) (string, error) {
			return "", cause
		})
		_, err := client.RepoCreate(context.Background(), RepoCreateOptions{Name: "x", Visibility: models.Public})
		if !errors.Is(err, cause) || errors.Is(err, ErrRepoExists) {
			t.Errorf("error = %v, want wrapped cause", err)
		}
	})
}

func TestExtractRepoURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		output string
		want   string
	}{
		{"https://github.com/octo/shop", "https://github.com/octo/shop"},
		{"✓ Created repository octo/shop on GitHub\n  https://github.com/octo/shop\n✓ Added remote", "https://github.com/octo/shop"},
		{"", ""},
		{"no url here", ""},
	}
	for _, tt := range tests {
		if got := extractRepoURL(tt.output); got != tt.want {
			t.Errorf("extractRepoURL(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}
