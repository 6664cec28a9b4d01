// Package gitio implements the repository primitives: the minimal,
// synchronous, blocking surface the rest of the core builds on to read a
// real on-disk git repository. It never writes to the repository.
//
// Grounded on kmrtdsii-playwithantigravity's go-git usage (internal/git,
// internal/state/graph_traversal.go) — the only example in the retrieval
// pack that opens and walks a genuine .git directory rather than shelling
// out to the git binary or reimplementing object storage.
package gitio

import (
	"errors"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/schani/git-lineage-sub000/internal/errkind"
)

// Repo is an opaque, read-only handle on a git repository, as described by
// a git repository.
type Repo struct {
	raw *gogit.Repository
}

// Open discovers the repository containing path, walking up through parent
// directories the way `git rev-parse --show-toplevel` does.
func Open(path string) (*Repo, error) {
	raw, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, errkind.Wrap(errkind.NotARepo, path, err)
		}
		return nil, errkind.Wrap(errkind.Io, "open repository at "+path, err)
	}
	return &Repo{raw: raw}, nil
}

// HeadID resolves the repository's current HEAD commit id.
func (r *Repo) HeadID() (Oid, error) {
	ref, err := r.raw.Head()
	if err != nil {
		return Oid{}, errkind.Wrap(errkind.NotFound, "resolve HEAD", err)
	}
	return OidFromHash(ref.Hash()), nil
}

// CommitMeta is the subset of a commit object the core needs: its tree, its
// parents, and the metadata used to build a commit record.
type CommitMeta struct {
	Tree       Oid
	Parents    []Oid
	AuthorName string
	// AuthorTimeRaw is git's raw "<seconds> <tz>" author-time encoding,
	// exactly as stored in the commit object, not a value go-git has
	// already parsed into a time.Time — callers run their own parsing
	// rules so the "unparseable timestamp" fallback path is reachable.
	AuthorTimeRaw string
	Subject       string
}

// Commit reads a commit object by id.
func (r *Repo) Commit(id Oid) (*CommitMeta, error) {
	c, err := r.raw.CommitObject(id.Hash())
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, errkind.Wrap(errkind.NotFound, "commit "+id.String(), err)
		}
		return nil, errkind.Wrap(errkind.Corrupt, "decode commit "+id.String(), err)
	}

	raw, err := rawAuthorTime(r.raw, id)
	if err != nil {
		// The parsed commit decoded fine; a failure to recover the raw
		// author-time line is not fatal, it just means the caller falls
		// back to "now".
		raw = ""
	}

	parents := make([]Oid, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, OidFromHash(p))
	}

	return &CommitMeta{
		Tree:          OidFromHash(c.TreeHash),
		Parents:       parents,
		AuthorName:    c.Author.Name,
		AuthorTimeRaw: raw,
		Subject:       firstLine(c.Message),
	}, nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

// TreeEntryInfo is the result of looking up a path in a tree: its object id
// and whether it is a blob (as opposed to a subtree or submodule).
type TreeEntryInfo struct {
	Oid     Oid
	IsBlob  bool
}

// TreeEntry looks up path within the tree identified by treeID. A missing
// entry is reported as (nil, nil), not an error, matching git's own
// add/delete-sensitive notion of a missing tree entry.
func (r *Repo) TreeEntry(treeID Oid, path string) (*TreeEntryInfo, error) {
	tree, err := r.raw.TreeObject(treeID.Hash())
	if err != nil {
		return nil, errkind.Wrap(errkind.Corrupt, "decode tree "+treeID.String(), err)
	}
	entry, err := tree.FindEntry(path)
	if err != nil {
		if errors.Is(err, object.ErrEntryNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, nil
		}
		return nil, errkind.Wrap(errkind.Io, "look up "+path, err)
	}
	return &TreeEntryInfo{
		Oid:    OidFromHash(entry.Hash),
		IsBlob: entry.Mode == filemode.Regular || entry.Mode == filemode.Executable || entry.Mode == filemode.Symlink,
	}, nil
}

// BlobBytes reads the raw bytes of a blob object.
func (r *Repo) BlobBytes(id Oid) ([]byte, error) {
	blob, err := r.raw.BlobObject(id.Hash())
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, errkind.Wrap(errkind.NotFound, "blob "+id.String(), err)
		}
		return nil, errkind.Wrap(errkind.Corrupt, "decode blob "+id.String(), err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, errkind.Wrap(errkind.Io, "read blob "+id.String(), err)
	}
	defer reader.Close()

	buf := make([]byte, 0, blob.Size)
	chunk := make([]byte, 32*1024)
	for {
		n, rerr := reader.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if rerr != nil {
			break
		}
	}
	return buf, nil
}

// ancestorIter yields ancestor commits of start in HEAD-first order, first
// parent preferred when topological order is underdetermined. go-git's
// LogOrderCommitterTime is the closest primitive to "HEAD-first" without
// committing to a specific tie-breaking rule for commits with identical
// timestamps; first-parent preference is applied by the caller via
// ParentHashes[0] when it needs to pick a single parent to diff against.
func (r *Repo) ancestorIter(start Oid) (object.CommitIter, error) {
	iter, err := r.raw.Log(&gogit.LogOptions{
		From:  start.Hash(),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, errkind.Wrap(errkind.Io, "walk ancestors of "+start.String(), err)
	}
	return iter, nil
}

// WalkAncestors calls visit for each ancestor of start (start included) in
// HEAD-first order, stopping early if visit returns false or an error.
func (r *Repo) WalkAncestors(start Oid, visit func(Oid) (bool, error)) error {
	iter, err := r.ancestorIter(start)
	if err != nil {
		return err
	}
	defer iter.Close()

	for {
		c, err := iter.Next()
		if err != nil {
			break // object.ErrCanceled / io.EOF both end the walk
		}
		cont, verr := visit(OidFromHash(c.Hash))
		if verr != nil {
			return verr
		}
		if !cont {
			return nil
		}
	}
	return nil
}
