package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fullstack-creator/create-fullstack/internal/cli/wizard"
	"github.com/fullstack-creator/create-fullstack/internal/config"
	"github.com/fullstack-creator/create-fullstack/internal/core/project"
	"github.com/fullstack-creator/create-fullstack/internal/core/scaffold"
	"github.com/fullstack-creator/create-fullstack/internal/ui"
	"github.com/fullstack-creator/create-fullstack/pkg/version"
)

// runCreate is the root command: banner, wizard, pipeline, summary.
func runCreate(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	out := cmd.OutOrStdout()
	th := deps.Theme

	printBanner(out, th)

	cfg, err := wizard.Run(wizard.DefaultQuestions(wizardDefaults(deps.Config)), deps.Prompter, deps.Logger)
	if errors.Is(err, wizard.ErrCancelled) {
		_, _ = fmt.Fprintln(out, th.Muted("Cancelled. Nothing was created."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("collect answers: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	reporter := newStepReporter(out, th, ui.NewProgressTo(th, deps.Headless, out))
	res, err := deps.Pipeline(reporter).Run(ctx, cfg)
	reporter.stop()

	switch {
	case errors.Is(err, context.Canceled):
		_, _ = fmt.Fprintln(out, th.Warn("Interrupted. Partial output was left in "+cfg.Root()))
		return nil
	case err != nil:
		_, _ = fmt.Fprintln(out, th.Card(th.SymError()+" Project not created", th.Error(err.Error())))
		return err
	}

	printSummary(out, th, cfg, res)
	if !deps.Headless.IsHeadless() && ui.IsTerminal(out) {
		printReadme(out, th, res.Root)
	}
	return nil
}

func wizardDefaults(cfg *config.Config) wizard.Defaults {
	d := wizard.Defaults{
		Directory:  cfg.Defaults.Directory,
		Language:   cfg.Defaults.Language,
		Visibility: cfg.Defaults.Visibility,
	}
	if d.Directory == "" {
		if wd, err := os.Getwd(); err == nil {
			d.Directory = wd
		}
	}
	return d
}

func printBanner(w io.Writer, th *ui.Theme) {
	_, _ = fmt.Fprintln(w, th.Card("create-fullstack "+version.GetVersion(),
		th.Muted("Answer a few questions to scaffold your project. Ctrl+C cancels.")))
	_, _ = fmt.Fprintln(w)
}

// printSummary prints the project location, how to run each service and
// any warnings collected along the way.
func printSummary(w io.Writer, th *ui.Theme, cfg project.Config, res *scaffold.Result) {
	lines := []string{
		"Location: " + th.Primary(res.Root),
	}
	if res.RepoURL != "" {
		lines = append(lines, "GitHub:   "+th.Primary(res.RepoURL))
	}

	if len(res.Services) > 0 {
		lines = append(lines, "", "Run everything:",
			"  cd "+cfg.Name+" && ./start.sh   "+th.Muted("# macOS / Linux"),
			"  cd "+cfg.Name+" && start.bat    "+th.Muted("# Windows"),
		)
		for _, s := range res.Services {
			lines = append(lines, "",
				fmt.Sprintf("%s (%s) on http://localhost:%d", s.Name, s.Framework, s.Port),
				"  cd "+filepath.ToSlash(filepath.Join(cfg.Name, s.Dir)))
			if s.VenvUnix != "" {
				lines = append(lines, "  source "+s.VenvUnix)
			}
			lines = append(lines, "  "+s.UnixCommand)
		}
	}

	title := "Project " + cfg.Name + " created"
	var card string
	if len(res.Warnings) == 0 {
		card = th.SuccessCard(title, lines...)
	} else {
		lines = append(lines, "", th.Warn(fmt.Sprintf("%d warning(s):", len(res.Warnings))))
		for _, warning := range res.Warnings {
			lines = append(lines, "  "+th.SymWarning()+" "+warning)
		}
		card = th.Card(th.SymWarning()+" "+title+" with warnings", lines...)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, card)
}

// printReadme renders the generated README. Rendering problems are not
// worth failing a successful run over.
func printReadme(w io.Writer, th *ui.Theme, root string) {
	data, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		deps.Logger.Debug("read generated README", "error", err)
		return
	}
	rendered, err := th.RenderMarkdown(string(data))
	if err != nil {
		deps.Logger.Debug("render generated README", "error", err)
		return
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(rendered, "\n"))
}
