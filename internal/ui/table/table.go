// Package table provides plain-text, raw and JSON renderers for tabular
// data: the commit-history rows the headless log command prints instead of
// launching the bubbletea explorer.
package table

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// DisplayOptions controls how a column/row result set is rendered.
type DisplayOptions struct {
	// JSON outputs results as a JSON array of objects.
	JSON bool
	// Raw outputs results as tab-separated values (for piping).
	Raw bool
}

// DisplayResults picks raw, JSON, or plain rendering from opts alone (Raw
// takes precedence over JSON), then writes the result to stdout.
func DisplayResults(columns []string, rows [][]string, opts DisplayOptions) error {
	if opts.Raw {
		for _, row := range rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		return nil
	}
	if opts.JSON {
		return PrintJSONResults(columns, rows)
	}
	PrintPlainTable(columns, rows)
	return nil
}

// IsTTY reports whether stdout is attached to a terminal; the log command
// uses it to decide whether to show its spinner.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
