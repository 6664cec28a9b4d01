// Package linemap builds and queries bidirectional line correspondences
// between two versions of a file, computed from a line-level diff.
package linemap

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/schani/git-lineage-sub000/internal/content"
	"github.com/schani/git-lineage-sub000/internal/gitio"
)

// Mapping is a bidirectional correspondence between the lines of an old
// file version (indices into OldLines) and a new one (indices into
// NewLines). Forward[i] is the new-side index a line survived to, or -1 if
// the old line was deleted. Reverse[j] is the old-side index a new line
// came from, or -1 if the new line was inserted. Both are 0-based.
type Mapping struct {
	OldLines []string
	NewLines []string
	Forward  []int
	Reverse  []int
}

const unmapped = -1

// Identity returns the trivial mapping for n lines unchanged across both
// sides: every index maps to itself.
func Identity(lines []string) Mapping {
	n := len(lines)
	forward := make([]int, n)
	reverse := make([]int, n)
	for i := range forward {
		forward[i] = i
		reverse[i] = i
	}
	return Mapping{OldLines: lines, NewLines: lines, Forward: forward, Reverse: reverse}
}

// Build loads path at commits a and b and computes the mapping between
// them. If a and b are the same commit, the result is the identity mapping
// over that file's lines without running a diff.
func Build(repo *gitio.Repo, a, b gitio.Oid, path string) (Mapping, error) {
	if a.Equal(b) {
		lines, err := content.Lines(repo, a, path)
		if err != nil {
			return Mapping{}, err
		}
		return Identity(lines), nil
	}

	oldLines, err := content.Lines(repo, a, path)
	if err != nil {
		return Mapping{}, err
	}
	newLines, err := content.Lines(repo, b, path)
	if err != nil {
		return Mapping{}, err
	}
	return BuildFromLines(oldLines, newLines), nil
}

// BuildFromLines runs a line-level LCS/Myers diff over oldLines and
// newLines and walks the resulting operations to populate the forward and
// reverse arrays. Lines are compared whole and verbatim: whitespace
// differences make two lines distinct, never normalised away.
func BuildFromLines(oldLines, newLines []string) Mapping {
	forward := make([]int, len(oldLines))
	reverse := make([]int, len(newLines))
	for i := range forward {
		forward[i] = unmapped
	}
	for j := range reverse {
		reverse[j] = unmapped
	}

	dmp := diffmatchpatch.New()
	oldText := joinWithNewlines(oldLines)
	newText := joinWithNewlines(newLines)
	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	oldIdx, newIdx := 0, 0
	for _, d := range diffs {
		k := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for n := 0; n < k; n++ {
				forward[oldIdx] = newIdx
				reverse[newIdx] = oldIdx
				oldIdx++
				newIdx++
			}
		case diffmatchpatch.DiffDelete:
			oldIdx += k
		case diffmatchpatch.DiffInsert:
			newIdx += k
		}
	}

	return Mapping{OldLines: oldLines, NewLines: newLines, Forward: forward, Reverse: reverse}
}

// joinWithNewlines terminates every line with '\n', including the last.
// Without a trailing terminator on the final line, diffmatchpatch's
// DiffLinesToRunes tokenizes it as a distinct (unterminated) pseudo-line
// from the same text terminated, which drops one token from the walk below
// whenever the last line is the empty string — a legitimate content.Lines
// result for a file ending in a blank line. Terminating unconditionally
// keeps every element of lines as its own recovered token.
func joinWithNewlines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	total := 0
	for _, l := range lines {
		total += len(l) + 1
	}
	buf := make([]byte, 0, total)
	for _, l := range lines {
		buf = append(buf, l...)
		buf = append(buf, '\n')
	}
	return string(buf)
}

// countLines counts the diffmatchpatch line-mode chunk's line count. Since
// joinWithNewlines terminates every line, including the last, every line
// in a chunk is terminated by '\n' and the count is just the number of
// terminators.
func countLines(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			n++
		}
	}
	return n
}
