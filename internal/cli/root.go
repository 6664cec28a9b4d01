// Package cli is the cobra command tree for the git-lineage shell: the
// external collaborator spec.md §6 describes, sitting on top of the core
// packages (internal/gitio, internal/history, internal/content,
// internal/linemap, internal/task, internal/appstate).
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schani/git-lineage-sub000/internal/errkind"
	"github.com/schani/git-lineage-sub000/internal/ui/styles"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "git-lineage",
	Short: "Explore how a file evolved across a git repository's history",
	Long: `git-lineage is an interactive explorer for the history of a single
file: pick a path, see the commits that actually touched it, and move
between commits with the cursor following the same logical line of code.

It never writes to the repository it explores.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree, formatting a core errkind.Error specially
// when one escapes a command's RunE.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		var kindErr *errkind.Error
		if errors.As(err, &kindErr) {
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(fmt.Sprintf("%s: %s", kindErr.Kind, kindErr.Context)))
		} else {
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newVersionCmd(),
		newExploreCmd(),
		newLogCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("git-lineage version %s\n", Version)
			fmt.Printf("  commit: %s\n", CommitSHA)
			fmt.Printf("  built:  %s\n", BuildDate)
		},
	}
}
