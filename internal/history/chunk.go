package history

import "github.com/schani/git-lineage-sub000/internal/gitio"

// Chunk is a window of matching commits plus whether more remain.
type Chunk struct {
	Records    []Record
	IsComplete bool
}

// LoadChunk returns the window of chunkSize matching commits starting at
// startOffset, where offsets count against commits that modified path, not
// against every commit walked. IsComplete is true when the walk reached
// the end of history while filling (or before filling) the window.
func LoadChunk(repo *gitio.Repo, path string, chunkSize, startOffset int) (Chunk, error) {
	var records []Record
	complete := true

	_, err := Stream(repo, path, func(rec Record, runningCount int) bool {
		index := runningCount - 1 // 0-based position among matching commits
		if index < startOffset {
			return true
		}
		if len(records) >= chunkSize {
			complete = false
			return false
		}
		records = append(records, rec)
		return true
	}, nil)
	if err != nil {
		return Chunk{}, err
	}

	return Chunk{Records: records, IsComplete: complete}, nil
}
