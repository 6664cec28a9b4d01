package errkind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMatchesWrappedKind(t *testing.T) {
	base := New(NotFound, "commit deadbeef")
	wrapped := fmt.Errorf("loading history: %w", base)

	require.True(t, Is(wrapped, NotFound))
	require.False(t, Is(wrapped, Binary))
}

func TestIsFalseForPlainError(t *testing.T) {
	require.False(t, Is(errors.New("boom"), Io))
	require.False(t, Is(nil, Io))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk fell over")
	e := Wrap(Io, "reading blob", cause)
	require.ErrorIs(t, e, cause)
	require.Contains(t, e.Error(), "reading blob")
}
