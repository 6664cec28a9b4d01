package gitio

import (
	"bytes"
	"io"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// rawAuthorTime recovers the raw "<seconds> <tz>" author-time field exactly
// as it is encoded on disk for a commit, bypassing go-git's own parsed
// object.Signature.When. The core needs the raw string because timestamp
// parsing follows a specific rule (first whitespace token as signed int64
// seconds, with a "now" fallback on failure) that only makes sense applied
// to the raw encoding.
func rawAuthorTime(repo *gogit.Repository, id Oid) (string, error) {
	obj, err := repo.Storer.EncodedObject(plumbing.CommitObject, id.Hash())
	if err != nil {
		return "", err
	}
	reader, err := obj.Reader()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return parseAuthorLine(raw), nil
}

// parseAuthorLine extracts the trailing "<seconds> <tz>" field from a raw
// commit object's "author Name <email> seconds tz" header line.
func parseAuthorLine(raw []byte) string {
	const prefix = "author "
	for _, line := range bytes.Split(raw, []byte("\n")) {
		if line, ok := cutPrefix(line, prefix); ok {
			gt := bytes.LastIndexByte(line, '>')
			if gt < 0 || gt+2 > len(line) {
				return ""
			}
			return string(bytes.TrimSpace(line[gt+1:]))
		}
		if len(line) == 0 {
			break // headers end at the first blank line
		}
	}
	return ""
}

func cutPrefix(line []byte, prefix string) ([]byte, bool) {
	if len(line) < len(prefix) || string(line[:len(prefix)]) != prefix {
		return nil, false
	}
	return line[len(prefix):], true
}
