package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints build metadata, which is worth pasting into bug reports.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show which gitfolio build is installed",
	Long: `Print the gitfolio release along with the commit it was built from,
the build date and the Go toolchain that compiled it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("gitfolio %s (commit %s, built %s, %s %s/%s)\n",
			version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
