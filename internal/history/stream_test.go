package history

import (
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"

	"github.com/schani/git-lineage-sub000/internal/gitio"
)

// testRepo builds a small in-memory repository and returns a *gitio.Repo
// wrapping it alongside the raw go-git repository for worktree operations.
type testRepo struct {
	raw *gogit.Repository
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	raw, err := gogit.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	return &testRepo{raw: raw}
}

func (tr *testRepo) writeFile(t *testing.T, path, contents string) {
	t.Helper()
	wt, err := tr.raw.Worktree()
	require.NoError(t, err)
	f, err := wt.Filesystem.Create(path)
	require.NoError(t, err)
	_, err = f.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func (tr *testRepo) commitAll(t *testing.T, msg string) plumbing.Hash {
	t.Helper()
	wt, err := tr.raw.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(".")
	require.NoError(t, err)
	h, err := wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: "a", Email: "a@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return h
}

func (tr *testRepo) gitio() *gitio.Repo {
	return gitio.NewForTesting(tr.raw)
}

func TestStreamFindsOnlyModifyingCommits(t *testing.T) {
	tr := newTestRepo(t)
	tr.writeFile(t, "a.txt", "hello\n")
	tr.writeFile(t, "other.txt", "x\n")
	tr.commitAll(t, "add a and other")

	tr.writeFile(t, "other.txt", "y\n") // touches a different file only
	tr.commitAll(t, "touch other only")

	tr.writeFile(t, "a.txt", "hello\nworld\n")
	tr.commitAll(t, "modify a")

	repo := tr.gitio()

	var subjects []string
	total, err := Stream(repo, "a.txt", func(rec Record, running int) bool {
		subjects = append(subjects, rec.Subject)
		return true
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, []string{"modify a", "add a and other"}, subjects)
}

func TestStreamCancellationStopsPromptly(t *testing.T) {
	tr := newTestRepo(t)
	for i := 0; i < 5; i++ {
		tr.writeFile(t, "a.txt", string(rune('a'+i)))
		tr.commitAll(t, "commit")
	}
	repo := tr.gitio()

	token := &alwaysCancelled{}
	count, err := Stream(repo, "a.txt", func(rec Record, running int) bool {
		t.Fatal("onCommit must not be called once the token is pre-cancelled")
		return true
	}, token)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

type alwaysCancelled struct{}

func (a *alwaysCancelled) Cancelled() bool { return true }

func TestFormatTimestampFallsBackOnUnparseable(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	require.Equal(t, now.Local().Format("2006-01-02 15:04"), FormatTimestamp("not-a-number", now))
	require.Equal(t, now.Local().Format("2006-01-02 15:04"), FormatTimestamp("", now))
}

func TestFormatTimestampUsesFirstToken(t *testing.T) {
	// 1704067200 == 2024-01-01T00:00:00Z
	got := FormatTimestamp("1704067200 +0000", time.Now())
	want := time.Unix(1704067200, 0).Local().Format("2006-01-02 15:04")
	require.Equal(t, want, got)
}
