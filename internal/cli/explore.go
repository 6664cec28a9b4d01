package cli

import (
	"github.com/spf13/cobra"

	"github.com/schani/git-lineage-sub000/internal/config"
	"github.com/schani/git-lineage-sub000/internal/errkind"
	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/task"
	"github.com/schani/git-lineage-sub000/internal/ui"
)

func newExploreCmd() *cobra.Command {
	var repoPath string

	cmd := &cobra.Command{
		Use:   "explore [path]",
		Short: "Open the interactive file-history explorer",
		Long: `explore opens a three-pane TUI: a file tree, the commits that touched
the selected file, and that file's content at the selected commit. Moving
between commits translates the cursor through the line mapper so it keeps
following the same logical line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := gitio.Open(repoPath)
			if err != nil {
				return err
			}

			prefs, err := config.Load(config.Path(repoPath))
			if err != nil {
				return errkind.Wrap(errkind.Io, "load preferences", err)
			}
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				prefs.NoColor = true
			}

			ex := task.NewExecutor(repo, 4, 64, 4)
			defer ex.Close()

			var initialPath string
			if len(args) == 1 {
				initialPath = args[0]
			}

			model := ui.NewModel(repo, ex, prefs, initialPath)
			return ui.Run(model)
		},
	}
	cmd.Flags().StringVar(&repoPath, "repo", ".", "path inside the repository to explore")
	return cmd
}
