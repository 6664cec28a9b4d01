package content

import (
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"

	"github.com/schani/git-lineage-sub000/internal/errkind"
	"github.com/schani/git-lineage-sub000/internal/gitio"
)

func newRepo(t *testing.T) (*gitio.Repo, *gogit.Repository) {
	t.Helper()
	raw, err := gogit.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	return gitio.NewForTesting(raw), raw
}

func writeAndCommit(t *testing.T, raw *gogit.Repository, path string, data []byte, msg string) {
	t.Helper()
	wt, err := raw.Worktree()
	require.NoError(t, err)
	f, err := wt.Filesystem.Create(path)
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	_, err = wt.Add(".")
	require.NoError(t, err)
	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: "a", Email: "a@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestLinesSplitsOnLF(t *testing.T) {
	repo, raw := newRepo(t)
	writeAndCommit(t, raw, "f.txt", []byte("one\ntwo\nthree"), "c1")

	head, err := repo.HeadID()
	require.NoError(t, err)

	lines, err := Lines(repo, head, "f.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestLinesRejectsBinary(t *testing.T) {
	repo, raw := newRepo(t)
	writeAndCommit(t, raw, "f.bin", []byte("one\x00two"), "c1")

	head, err := repo.HeadID()
	require.NoError(t, err)

	_, err = Lines(repo, head, "f.bin")
	require.True(t, errkind.Is(err, errkind.Binary))
}

func TestLinesNotFoundForMissingPath(t *testing.T) {
	repo, raw := newRepo(t)
	writeAndCommit(t, raw, "f.txt", []byte("x"), "c1")

	head, err := repo.HeadID()
	require.NoError(t, err)

	_, err = Lines(repo, head, "missing.txt")
	require.True(t, errkind.Is(err, errkind.NotFound))
}

func TestAtHeadMatchesLinesAtHeadID(t *testing.T) {
	repo, raw := newRepo(t)
	writeAndCommit(t, raw, "f.txt", []byte("a\nb"), "c1")

	head, err := repo.HeadID()
	require.NoError(t, err)

	want, err := Lines(repo, head, "f.txt")
	require.NoError(t, err)

	got, err := AtHead(repo, "f.txt")
	require.NoError(t, err)
	require.Equal(t, want, got)
}
