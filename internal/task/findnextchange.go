package task

import (
	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/history"
	"github.com/schani/git-lineage-sub000/internal/linemap"
)

// findNextChange walks the commits that modified path and are strictly
// newer than from, oldest first, and returns the first one whose mapping
// from `from` loses Some status at line — i.e. the first commit after
// `from` where that exact line was touched. ok is false if from never
// appears in the matching-commit history, or if no later matching commit
// drops the line.
func findNextChange(repo *gitio.Repo, path string, from gitio.Oid, line int) (gitio.Oid, bool, error) {
	var newerThanFrom []gitio.Oid // HEAD-first order, i.e. newest first
	found := false

	_, err := history.Stream(repo, path, func(rec history.Record, running int) bool {
		if rec.ID.Equal(from) {
			found = true
			return false
		}
		newerThanFrom = append(newerThanFrom, rec.ID)
		return true
	}, nil)
	if err != nil {
		return gitio.Oid{}, false, err
	}
	if !found {
		return gitio.Oid{}, false, nil
	}

	for i := len(newerThanFrom) - 1; i >= 0; i-- { // oldest first
		candidate := newerThanFrom[i]
		m, err := linemap.Build(repo, from, candidate, path)
		if err != nil {
			return gitio.Oid{}, false, err
		}
		if line < 0 || line >= len(m.Forward) {
			continue
		}
		if m.Forward[line] == -1 {
			return candidate, true, nil
		}
	}
	return gitio.Oid{}, false, nil
}
