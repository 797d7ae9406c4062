package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fullstack-creator/create-fullstack/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "create-fullstack %s %s/%s %s\n",
			version.GetFullVersion(), runtime.GOOS, runtime.GOARCH, runtime.Version())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
