package task

import (
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	"github.com/schani/git-lineage-sub000/internal/gitio"
)

func newTestRepo(t *testing.T) *gitio.Repo {
	t.Helper()
	raw, err := gogit.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)

	write := func(path, data string) {
		wt, err := raw.Worktree()
		require.NoError(t, err)
		f, err := wt.Filesystem.Create(path)
		require.NoError(t, err)
		_, err = f.Write([]byte(data))
		require.NoError(t, err)
		require.NoError(t, f.Close())
		_, err = wt.Add(".")
		require.NoError(t, err)
		_, err = wt.Commit("c", &gogit.CommitOptions{
			Author: &object.Signature{Name: "a", Email: "a@example.com", When: time.Now()},
		})
		require.NoError(t, err)
	}
	write("a.txt", "one\n")
	write("a.txt", "one\ntwo\n")

	return gitio.NewForTesting(raw)
}

func collectUntil(t *testing.T, results <-chan Result, kind ResultKind) []Result {
	t.Helper()
	var got []Result
	for r := range results {
		got = append(got, r)
		if r.Kind == kind {
			return got
		}
	}
	t.Fatal("channel closed before expected result kind arrived")
	return nil
}

func TestLoadCommitHistoryDeliversAllMatchingCommits(t *testing.T) {
	repo := newTestRepo(t)
	ex := NewExecutor(repo, 1, 4, 2)
	ex.Submit(Task{Kind: LoadCommitHistory, Path: "a.txt"})

	results := collectUntil(t, ex.Results(), CommitHistoryLoaded)
	require.Len(t, results, 1)
	require.Equal(t, CommitHistoryLoaded, results[0].Kind)
	require.Len(t, results[0].Records, 2)
	ex.Close()
}

func TestStreamingHistoryEmitsCommitFoundThenComplete(t *testing.T) {
	repo := newTestRepo(t)
	ex := NewExecutor(repo, 1, 8, 2)
	token := NewCancelToken()
	ex.Submit(Task{Kind: LoadCommitHistoryStreaming, Path: "a.txt", Token: token})

	var kinds []ResultKind
	for r := range ex.Results() {
		kinds = append(kinds, r.Kind)
		if r.Kind == CommitHistoryComplete {
			break
		}
	}
	require.Equal(t, []ResultKind{CommitFound, CommitFound, CommitHistoryComplete}, kinds)
	ex.Close()
}

func TestFindNextChangeReportsNotFoundWhenFromIsHead(t *testing.T) {
	repo := newTestRepo(t)
	head, err := repo.HeadID()
	require.NoError(t, err)

	ex := NewExecutor(repo, 1, 4, 2)
	ex.Submit(Task{Kind: FindNextChange, Path: "a.txt", From: head, Line: 0})

	results := collectUntil(t, ex.Results(), NextChangeNotFound)
	require.Equal(t, NextChangeNotFound, results[len(results)-1].Kind)
	ex.Close()
}

func TestCancelledTokenStillEmitsCompleteWithoutError(t *testing.T) {
	repo := newTestRepo(t)
	token := NewCancelToken()
	token.Cancel()

	ex := NewExecutor(repo, 1, 8, 2)
	ex.Submit(Task{Kind: LoadCommitHistoryStreaming, Path: "a.txt", Token: token})

	results := collectUntil(t, ex.Results(), CommitHistoryComplete)
	require.Len(t, results, 1)
	require.Equal(t, 0, results[0].Total)
	ex.Close()
}
