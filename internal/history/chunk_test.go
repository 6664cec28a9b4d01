package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadChunkWindowsOverMatchingCommitsOnly(t *testing.T) {
	tr := newTestRepo(t)
	for i := 0; i < 3; i++ {
		tr.writeFile(t, "noise.txt", string(rune('a'+i)))
		tr.commitAll(t, "noise")
	}
	tr.writeFile(t, "a.txt", "1")
	tr.commitAll(t, "a v1")
	tr.writeFile(t, "noise.txt", "y")
	tr.commitAll(t, "noise again")
	tr.writeFile(t, "a.txt", "2")
	tr.commitAll(t, "a v2")

	repo := tr.gitio()

	chunk, err := LoadChunk(repo, "a.txt", 1, 0)
	require.NoError(t, err)
	require.False(t, chunk.IsComplete)
	require.Len(t, chunk.Records, 1)
	require.Equal(t, "a v2", chunk.Records[0].Subject)

	chunk, err = LoadChunk(repo, "a.txt", 1, 1)
	require.NoError(t, err)
	require.True(t, chunk.IsComplete)
	require.Len(t, chunk.Records, 1)
	require.Equal(t, "a v1", chunk.Records[0].Subject)

	chunk, err = LoadChunk(repo, "a.txt", 10, 0)
	require.NoError(t, err)
	require.True(t, chunk.IsComplete)
	require.Len(t, chunk.Records, 2)
}
