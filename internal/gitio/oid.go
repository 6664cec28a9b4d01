package gitio

import "github.com/go-git/go-git/v5/plumbing"

// Oid is a commit, tree, or blob object id, rendered as a lowercase hex
// string everywhere it crosses a package boundary.
type Oid struct {
	hash plumbing.Hash
}

// ZeroOid is the Oid with no object behind it.
var ZeroOid = Oid{}

// OidFromHash wraps a go-git plumbing.Hash.
func OidFromHash(h plumbing.Hash) Oid {
	return Oid{hash: h}
}

// ParseOid parses a lowercase hex object id.
func ParseOid(s string) (Oid, error) {
	if !plumbing.IsHash(s) {
		return Oid{}, &parseError{s}
	}
	return Oid{hash: plumbing.NewHash(s)}, nil
}

type parseError struct{ s string }

func (e *parseError) Error() string { return "not a valid object id: " + e.s }

// String renders the full lowercase hex id.
func (o Oid) String() string {
	return o.hash.String()
}

// Short renders the first 8 hex characters, always a prefix of String.
func (o Oid) Short() string {
	s := o.hash.String()
	if len(s) < 8 {
		return s
	}
	return s[:8]
}

// IsZero reports whether the id has no object behind it.
func (o Oid) IsZero() bool {
	return o.hash.IsZero()
}

func (o Oid) Hash() plumbing.Hash {
	return o.hash
}

func (o Oid) Equal(other Oid) bool {
	return o.hash == other.hash
}
