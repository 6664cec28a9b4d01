package gitio

import gogit "github.com/go-git/go-git/v5"

// NewForTesting wraps an already-constructed go-git repository (typically
// backed by an in-memory storer) without going through Open's filesystem
// discovery. It exists for tests in other packages that need a real, small
// repository without touching disk.
func NewForTesting(raw *gogit.Repository) *Repo {
	return &Repo{raw: raw}
}
