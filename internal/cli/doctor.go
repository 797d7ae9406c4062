package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fullstack-creator/create-fullstack/internal/preflight"
)

// ErrToolsMissing is returned by doctor when a required tool is missing.
var ErrToolsMissing = errors.New("required tools are missing")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check which scaffolding tools are installed",
	Long: `Check every tool the generators may invoke (git, Node.js, Python, Cargo,
Go, the .NET SDK and the GitHub CLI) and print install hints for the
ones that are missing or too old. Exits non-zero when a required tool
is missing.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	out := cmd.OutOrStdout()
	th := deps.Theme

	report := deps.Checker.Run(cmd.Context(), preflight.Catalog(deps.Checker.GOOS()))

	lines := make([]string, 0, len(report.Checks))
	var hints []string
	for _, c := range report.Checks {
		var sym string
		switch c.Status {
		case preflight.StatusOK:
			sym = th.SymSuccess()
		case preflight.StatusWarn:
			sym = th.SymWarning()
		default:
			sym = th.SymError()
		}

		detail := c.Version
		if c.Detail != "" {
			detail = c.Detail
		}
		if c.Tool.Optional && c.Path == "" {
			detail += ", optional"
		}
		lines = append(lines, fmt.Sprintf("%s %-14s %s", sym, c.Tool.Label, th.Muted(detail)))
		if c.Hint != "" {
			hints = append(hints, fmt.Sprintf("%s: %s", c.Tool.Label, c.Hint))
		}
	}

	_, _ = fmt.Fprintln(out, th.Card("Scaffolding tools", lines...))

	if len(hints) > 0 {
		_, _ = fmt.Fprintln(out, th.Card("How to fix", hints...))
	}

	cfgLine := "Config: " + deps.ConfigPath
	if deps.ConfigPath == "" {
		cfgLine = "Config: none"
	} else if !deps.Loaded {
		cfgLine += th.Muted(" (not found, using defaults)")
	}
	_, _ = fmt.Fprintln(out, th.Muted(strings.TrimSpace(cfgLine)))

	if !report.OK() {
		return ErrToolsMissing
	}
	return nil
}
