package appstate

import (
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/history"
	"github.com/schani/git-lineage-sub000/internal/task"
)

func recordFor(id gitio.Oid) history.Record {
	return history.Record{ID: id, ShortID: id.Short()}
}

type fixture struct {
	repo     *gitio.Repo
	commits  []gitio.Oid // oldest first
}

func buildFixture(t *testing.T) fixture {
	t.Helper()
	raw, err := gogit.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)

	var ids []gitio.Oid
	commit := func(data string) {
		wt, err := raw.Worktree()
		require.NoError(t, err)
		f, err := wt.Filesystem.Create("a.txt")
		require.NoError(t, err)
		_, err = f.Write([]byte(data))
		require.NoError(t, err)
		require.NoError(t, f.Close())
		_, err = wt.Add(".")
		require.NoError(t, err)
		h, err := wt.Commit("c", &gogit.CommitOptions{
			Author: &object.Signature{Name: "a", Email: "a@example.com", When: time.Now()},
		})
		require.NoError(t, err)
		ids = append(ids, gitio.OidFromHash(h))
	}
	commit("one\ntwo\nthree\n")
	commit("zero\none\ntwo\nthree\n") // inserted a line at the top

	return fixture{repo: gitio.NewForTesting(raw), commits: ids}
}

func TestSetActiveFileIssuesStreamingTask(t *testing.T) {
	fx := buildFixture(t)
	ex := task.NewExecutor(fx.repo, 1, 8, 2)
	defer ex.Close()
	s := New(fx.repo, ex)

	s.SetActiveFile("./a.txt")
	require.True(t, s.hasActive)
	require.Equal(t, "a.txt", s.activeFile) // leading "./" stripped

	var total int
	for r := range ex.Results() {
		if r.Kind == task.CommitHistoryComplete {
			total = r.Total
			break
		}
		s.HandleResult(r)
	}
	require.Equal(t, 2, total)
}

func TestHandleResultDropsStaleResultsForDifferentPath(t *testing.T) {
	fx := buildFixture(t)
	ex := task.NewExecutor(fx.repo, 1, 8, 2)
	defer ex.Close()
	s := New(fx.repo, ex)
	s.activeFile = "a.txt"
	s.hasActive = true

	applied := s.HandleResult(task.Result{Kind: task.CommitHistoryLoaded, Path: "other.txt"})
	require.False(t, applied)
	require.Empty(t, s.history)
}

func TestSwitchCommitRestoresRememberedCursor(t *testing.T) {
	fx := buildFixture(t)
	ex := task.NewExecutor(fx.repo, 1, 8, 2)
	defer ex.Close()
	s := New(fx.repo, ex)
	s.activeFile = "a.txt"
	s.hasActive = true

	require.NoError(t, s.SwitchCommit(fx.commits[0]))
	s.cursorLine = 2 // sitting on "three"

	require.NoError(t, s.SwitchCommit(fx.commits[1]))
	require.Equal(t, 3, s.cursorLine) // "three" moved down one line

	// Switch back: remembered cursor for (commits[0], a.txt) must be 2.
	require.NoError(t, s.SwitchCommit(fx.commits[0]))
	require.Equal(t, 2, s.cursorLine)
}

func TestHandleNextChangeResultRejectsCommitNotInHistory(t *testing.T) {
	fx := buildFixture(t)
	ex := task.NewExecutor(fx.repo, 1, 8, 2)
	defer ex.Close()
	s := New(fx.repo, ex)

	id, inHistory := s.HandleNextChangeResult(task.Result{Kind: task.NextChangeFound, Oid: fx.commits[0]})
	require.Equal(t, fx.commits[0], id)
	require.False(t, inHistory)
}

func TestHandleNextChangeResultAcceptsCommitInHistory(t *testing.T) {
	fx := buildFixture(t)
	ex := task.NewExecutor(fx.repo, 1, 8, 2)
	defer ex.Close()
	s := New(fx.repo, ex)
	s.history = append(s.history, recordFor(fx.commits[0]))

	id, inHistory := s.HandleNextChangeResult(task.Result{Kind: task.NextChangeFound, Oid: fx.commits[0]})
	require.Equal(t, fx.commits[0], id)
	require.True(t, inHistory)
}
