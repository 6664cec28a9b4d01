package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/history"
	"github.com/schani/git-lineage-sub000/internal/ui"
	"github.com/schani/git-lineage-sub000/internal/ui/styles"
	"github.com/schani/git-lineage-sub000/internal/ui/table"
)

func newLogCmd() *cobra.Command {
	var (
		repoPath string
		jsonOut  bool
		rawOut   bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "log <path>",
		Short: "Print the commits that modified a file, newest first",
		Long: `log streams the history.Stream walk headlessly: useful when stdout is
piped, or under the scripted test harness spec.md §6 describes, where the
interactive explorer is not appropriate. Ctrl-C cancels the stream the same
cooperative way the TUI's active-file switch does; the commits found
before the interrupt are still printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			repo, err := gitio.Open(repoPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			token := ctxToken{ctx}

			spin := ui.NewSpinner("loading history for " + path)
			if table.IsTTY() && !jsonOut && !rawOut {
				spin.Start()
			}

			var records []history.Record
			total, err := history.Stream(repo, path, func(rec history.Record, running int) bool {
				records = append(records, rec)
				if limit > 0 && running >= limit {
					return false
				}
				return true
			}, token)
			spin.Stop()
			if err != nil {
				return err
			}

			columns := []string{"hash", "author", "date", "subject"}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{rec.ShortID, rec.AuthorName, rec.Timestamp, rec.Subject})
			}
			if !jsonOut && !rawOut {
				cmd.Println(styles.MutedMsg(ui.FormatCount(total) + " commits"))
			}
			return table.DisplayResults(columns, rows, table.DisplayOptions{JSON: jsonOut, Raw: rawOut})
		},
	}
	cmd.Flags().StringVar(&repoPath, "repo", ".", "path inside the repository to read")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&rawOut, "raw", false, "print tab-separated, unstyled")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many matching commits (0 = no limit)")
	return cmd
}

// ctxToken adapts a context.Context's cancellation to history.CancelToken,
// so Ctrl-C during a headless `log` run polls the same way the task
// executor's *task.CancelToken does for the TUI's streaming task.
type ctxToken struct {
	ctx context.Context
}

func (t ctxToken) Cancelled() bool {
	select {
	case <-t.ctx.Done():
		return true
	default:
		return false
	}
}

var _ history.CancelToken = ctxToken{}
