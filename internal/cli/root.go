package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fullstack-creator/create-fullstack/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "create-fullstack",
	Short: "Scaffold a frontend/backend project with start scripts and a git repository",
	Long: `create-fullstack asks a few questions and generates a project folder with
a frontend/ and/or backend/ subtree created by each framework's own
scaffolder, start.sh and start.bat launchers, a README and .gitignore, an
initial git commit and, optionally, a GitHub repository.

Run "create-fullstack doctor" to check which scaffolding tools are installed.`,
	Version:       version.GetVersion(),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCreate,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("create-fullstack %s\n", version.GetVersion()))
}
