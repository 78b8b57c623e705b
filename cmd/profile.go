package cmd

import (
	"github.com/huangsam/gitfolio/core"
	"github.com/huangsam/gitfolio/schema"
	"github.com/spf13/cobra"
)

// runView returns a RunE that profiles cfg.SourcePath with the shared configuration.
func runView(exec core.ExecutorFunc) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		return exec(rootCtx, cfg, cacheManager)
	}
}

// profileCmd runs all three log scans and merges them per author.
var profileCmd = &cobra.Command{
	Use:   "profile [source]",
	Short: "Show the full contribution profile of every author.",
	Long: `Build a contribution profile for every author in the repository.

The source is either a directory containing the repository (or a direct
subdirectory that does) or a ZIP archive of one. Archives are extracted to a
temporary directory that is removed when the run ends.

Each profile combines:
- Commit count and share of all commits
- Lines added, deleted and the net difference
- Files created, modified and deleted

Examples:
  # Profile the current directory
  gitfolio profile

  # Profile an uploaded archive and keep only the top 5
  gitfolio profile project.zip --limit 5

  # Export every author to Parquet for analysis
  gitfolio profile --output parquet --output-file authors.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupFor(schema.ProfileView),
	RunE:    runView(core.ExecuteProfile),
}

// commitsCmd ranks authors by commit count only.
var commitsCmd = &cobra.Command{
	Use:   "commits [source]",
	Short: "Count commits per author.",
	Long: `Count the commits of every author, using a single pass over the log.

Examples:
  # Who commits the most?
  gitfolio commits --limit 10

  # JSON for scripting
  gitfolio commits --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupFor(schema.CommitsView),
	RunE:    runView(core.ExecuteProfile),
}

// linesCmd shows added and deleted line counts per author.
var linesCmd = &cobra.Command{
	Use:   "lines [source]",
	Short: "Sum lines added and deleted per author.",
	Long: `Sum the lines each author added and deleted across all commits.

Binary files report no line counts and contribute nothing.

Examples:
  # Net line contribution per author
  gitfolio lines

  # Only authors matching a name
  gitfolio lines --author alice`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupFor(schema.LinesView),
	RunE:    runView(core.ExecuteProfile),
}

// filesCmd shows created, modified and deleted files per author.
var filesCmd = &cobra.Command{
	Use:   "files [source]",
	Short: "List the files each author created, modified and deleted.",
	Long: `Collect the distinct files each author created, modified and deleted.

A path is counted once per category no matter how often it was touched.

Examples:
  # File touches per author
  gitfolio files

  # Full file lists as JSON
  gitfolio files --output json --output-file files.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupFor(schema.FilesView),
	RunE:    runView(core.ExecuteProfile),
}
