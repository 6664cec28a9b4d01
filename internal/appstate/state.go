// Package appstate owns the application-state invariants that make
// asynchronous history/content results safe against user navigation
// races: which file is currently active, per-commit cursor memory, and
// the read-only projection the UI renders from.
package appstate

import (
	"strings"

	"github.com/schani/git-lineage-sub000/internal/content"
	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/history"
	"github.com/schani/git-lineage-sub000/internal/linemap"
	"github.com/schani/git-lineage-sub000/internal/task"
)

const defaultRadius = 5

// cursorKey identifies a (commit, path) pair for cursor memory lookups.
type cursorKey struct {
	commit gitio.Oid
	path   string
}

// SearchState is the UI's in-content search position; the core never
// performs the search itself, only carries the shape so the projection
// has somewhere to put it.
type SearchState struct {
	Query     string `json:"query"`
	Active    bool   `json:"active"`
	MatchLine *int   `json:"match_line,omitempty"`
}

// State tracks the active file, the in-flight streaming token, cursor
// memory, and enough of the last-loaded history/content to build a
// projection. It is not safe for concurrent use from more than one
// goroutine; callers serialise access to it the same way they serialise
// access to the task executor's result channel.
type State struct {
	repo *gitio.Repo
	ex   *task.Executor

	activeFile  string
	hasActive   bool
	streamToken *task.CancelToken

	cursorMemory map[cursorKey]int

	history []history.Record
	isLoadingHistory bool

	selectedCommit gitio.Oid
	hasSelected    bool
	contentLines   []string
	cursorLine     int

	search SearchState
	status string
}

// New returns a state with no active file and empty cursor memory.
func New(repo *gitio.Repo, ex *task.Executor) *State {
	return &State{
		repo:         repo,
		ex:           ex,
		cursorMemory: make(map[cursorKey]int),
	}
}

// SetActiveFile implements the core's set_active_file rule: cancel and
// drop any outstanding streaming token, clear cursor memory, adopt path as
// the active file (empty string means "no selection"), and issue a fresh
// streaming history task.
func (s *State) SetActiveFile(path string) {
	if s.streamToken != nil {
		s.streamToken.Cancel()
		s.streamToken = nil
	}
	s.cursorMemory = make(map[cursorKey]int)
	s.history = nil
	s.isLoadingHistory = false
	s.hasSelected = false
	s.contentLines = nil

	path = normalizePath(path)
	s.activeFile = path
	s.hasActive = path != ""
	if !s.hasActive {
		return
	}

	s.streamToken = task.NewCancelToken()
	s.isLoadingHistory = true
	s.ex.Submit(task.Task{Kind: task.LoadCommitHistoryStreaming, Path: path, Token: s.streamToken})
}

func normalizePath(path string) string {
	return strings.TrimPrefix(path, "./")
}

// HandleResult applies one task.Result to state, filtering out results
// whose path no longer matches the active file. It returns true if the
// result was applied (as opposed to dropped as stale).
func (s *State) HandleResult(r task.Result) bool {
	switch r.Kind {
	case task.CommitFound, task.CommitHistoryLoaded, task.CommitHistoryChunkLoaded, task.CommitHistoryComplete:
		if !s.hasActive || r.Path != s.activeFile {
			return false
		}
	}

	switch r.Kind {
	case task.CommitFound:
		s.history = append(s.history, r.Record)
	case task.CommitHistoryLoaded:
		s.history = r.Records
		s.isLoadingHistory = false
	case task.CommitHistoryChunkLoaded:
		s.history = append(s.history, r.Records...)
	case task.CommitHistoryComplete:
		s.isLoadingHistory = false
	case task.Error:
		s.status = r.Message
	}
	return true
}

// SwitchCommit implements the core's commit-switch rule: remember the
// cursor at the commit being left, load content at to, and either restore
// a remembered cursor for (to, path) or translate the old cursor through
// the line mapping with the standard fallback radius.
func (s *State) SwitchCommit(to gitio.Oid) error {
	if !s.hasActive {
		return nil
	}
	path := s.activeFile

	if s.hasSelected {
		s.cursorMemory[cursorKey{s.selectedCommit, path}] = s.cursorLine
	}

	lines, err := content.Lines(s.repo, to, path)
	if err != nil {
		return err
	}

	newCursor := 0
	if remembered, ok := s.cursorMemory[cursorKey{to, path}]; ok {
		newCursor = remembered
	} else if s.hasSelected {
		m, err := linemap.Build(s.repo, s.selectedCommit, to, path)
		if err != nil {
			return err
		}
		if j, ok := m.LocateWithFallbacks(s.cursorLine, defaultRadius); ok {
			newCursor = j
		} else {
			newCursor = s.cursorLine // every strategy gave up: stay put
		}
	}

	s.selectedCommit = to
	s.hasSelected = true
	s.contentLines = lines
	s.cursorLine = clampCursor(newCursor, len(lines))
	return nil
}

func clampCursor(line, numLines int) int {
	if numLines == 0 {
		return 0
	}
	if line < 0 {
		return 0
	}
	if line >= numLines {
		return numLines - 1
	}
	return line
}

// HandleNextChangeResult resolves a FindNextChange result against the
// currently loaded history list: a found commit id is only selectable if
// it is actually present in that list, otherwise the caller reports
// "commit not in history".
func (s *State) HandleNextChangeResult(r task.Result) (id gitio.Oid, inHistory bool) {
	if r.Kind != task.NextChangeFound {
		return gitio.Oid{}, false
	}
	for _, rec := range s.history {
		if rec.ID.Equal(r.Oid) {
			return r.Oid, true
		}
	}
	return r.Oid, false
}

// ActiveFile returns the currently active path and whether one is set.
func (s *State) ActiveFile() (string, bool) {
	return s.activeFile, s.hasActive
}

// SelectedCommit returns the currently selected commit id and whether one
// has been selected yet for the active file.
func (s *State) SelectedCommit() (gitio.Oid, bool) {
	return s.selectedCommit, s.hasSelected
}

// CursorLine returns the current cursor line into ContentLines.
func (s *State) CursorLine() int {
	return s.cursorLine
}

// ContentLines returns the currently loaded content of the active file at
// the selected commit.
func (s *State) ContentLines() []string {
	return s.contentLines
}

// History returns the commit records streamed so far for the active file,
// in HEAD-first order.
func (s *State) History() []history.Record {
	return s.history
}

// IsLoadingHistory reports whether a history stream for the active file is
// still in flight.
func (s *State) IsLoadingHistory() bool {
	return s.isLoadingHistory
}

// SetCursorLine moves the cursor within the currently loaded content
// without switching commits, clamping into range. This is how plain
// up/down/page/home/end navigation inside the content pane is applied;
// SwitchCommit is reserved for moving between commits of the same file.
func (s *State) SetCursorLine(line int) {
	s.cursorLine = clampCursor(line, len(s.contentLines))
}

// StartNextChangeSearch submits a FindNextChange task from the currently
// selected commit and cursor line. It is a no-op if no file/commit is
// active.
func (s *State) StartNextChangeSearch() {
	if !s.hasActive || !s.hasSelected {
		return
	}
	s.ex.Submit(task.Task{
		Kind: task.FindNextChange,
		Path: s.activeFile,
		From: s.selectedCommit,
		Line: s.cursorLine,
	})
}

// Status returns the last status message set by an Error result.
func (s *State) Status() string {
	return s.status
}

// SetStatus overwrites the status message, for UI-originated notices (e.g.
// "commit not in history") that did not come through HandleResult.
func (s *State) SetStatus(msg string) {
	s.status = msg
}
