// Package content loads the line-split text of a file at a given commit,
// tolerating legacy non-UTF-8 encodings the way git repos sometimes carry
// them, and rejecting binary blobs outright.
package content

import (
	"strings"

	"github.com/schani/git-lineage-sub000/internal/errkind"
	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/util"
)

// Lines resolves the tree of commit id, looks up path, requires a blob
// entry, decodes it lossily as UTF-8, and splits it on LF. A blob
// containing a NUL byte is rejected as Binary rather than decoded.
func Lines(repo *gitio.Repo, id gitio.Oid, path string) ([]string, error) {
	meta, err := repo.Commit(id)
	if err != nil {
		return nil, err
	}
	entry, err := repo.TreeEntry(meta.Tree, path)
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.IsBlob {
		return nil, errkind.New(errkind.NotFound, path)
	}

	raw, err := repo.BlobBytes(entry.Oid)
	if err != nil {
		return nil, err
	}
	if isBinary(raw) {
		return nil, errkind.New(errkind.Binary, path)
	}

	text := util.ToValidUTF8(string(raw))
	return splitLines(text), nil
}

// splitLines splits on LF the way a text file's line count is usually
// understood: a trailing newline ends the last line rather than starting
// an extra empty one.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// AtHead is sugar for Lines(repo, head_id(repo), path).
func AtHead(repo *gitio.Repo, path string) ([]string, error) {
	head, err := repo.HeadID()
	if err != nil {
		return nil, err
	}
	return Lines(repo, head, path)
}

// isBinary reports whether content contains a NUL byte anywhere, per
// invariant 7: a blob is Binary if its bytes contain a NUL, full stop, not
// git's own first-8000-bytes sniff heuristic.
func isBinary(content []byte) bool {
	for _, b := range content {
		if b == 0 {
			return true
		}
	}
	return false
}
