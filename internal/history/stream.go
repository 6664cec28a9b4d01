package history

import (
	"time"

	"github.com/schani/git-lineage-sub000/internal/gitio"
)

// CancelToken is the cooperative cancellation signal a caller may pass to
// Stream. It is polled once per commit iteration, including commits that
// do not modify the path being walked. internal/task's cancellation token
// satisfies this interface; a nil CancelToken never cancels.
type CancelToken interface {
	Cancelled() bool
}

// OnCommit is called once per matching commit, in HEAD-first order, with
// the record and the number of matching commits delivered so far
// (including this one). Returning false stops the walk early, the same as
// cancellation.
type OnCommit func(rec Record, runningCount int) bool

// Stream walks the ancestors of HEAD (or of a particular starting commit,
// see StreamFrom) that modified path, delivering each via onCommit. It
// returns the total number of commits delivered, whether the walk ran to
// completion, stopped because onCommit returned false, or stopped because
// token was cancelled.
func Stream(repo *gitio.Repo, path string, onCommit OnCommit, token CancelToken) (int, error) {
	head, err := repo.HeadID()
	if err != nil {
		return 0, err
	}
	return StreamFrom(repo, head, path, onCommit, token)
}

// StreamFrom is Stream starting from an explicit commit instead of HEAD.
func StreamFrom(repo *gitio.Repo, start gitio.Oid, path string, onCommit OnCommit, token CancelToken) (int, error) {
	now := time.Now()
	count := 0
	var walkErr error

	err := repo.WalkAncestors(start, func(id gitio.Oid) (bool, error) {
		if token != nil && token.Cancelled() {
			return false, nil
		}

		meta, err := repo.Commit(id)
		if err != nil {
			walkErr = err
			return false, err
		}

		modified, err := commitModified(repo, meta, path)
		if err != nil {
			walkErr = err
			return false, err
		}
		if !modified {
			return true, nil
		}

		count++
		rec := newRecord(repo, id, meta, now)
		return onCommit(rec, count), nil
	})
	if err != nil {
		return count, err
	}
	return count, walkErr
}

// commitModified reports whether the commit described by meta modified
// path: a root commit (no parents) modified it iff the path exists in its
// tree; otherwise it modified it iff the path's tree-entry oid differs
// from at least one parent's (a missing entry counts as distinct from a
// present one, capturing both adds and deletes). The first parent that
// shows a difference wins the decision, so parent order never matters for
// the final answer beyond picking which parent gets compared first.
func commitModified(repo *gitio.Repo, meta *gitio.CommitMeta, path string) (bool, error) {
	ownEntry, err := repo.TreeEntry(meta.Tree, path)
	if err != nil {
		return false, err
	}

	if len(meta.Parents) == 0 {
		return ownEntry != nil, nil
	}

	for _, parent := range meta.Parents {
		parentMeta, err := repo.Commit(parent)
		if err != nil {
			return false, err
		}
		parentEntry, err := repo.TreeEntry(parentMeta.Tree, path)
		if err != nil {
			return false, err
		}
		if entriesDiffer(ownEntry, parentEntry) {
			return true, nil
		}
	}
	return false, nil
}

func entriesDiffer(a, b *gitio.TreeEntryInfo) bool {
	if (a == nil) != (b == nil) {
		return true
	}
	if a == nil {
		return false
	}
	return !a.Oid.Equal(b.Oid)
}
