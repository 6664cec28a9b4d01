package appstate

import "encoding/json"

// CommitRow is one row of the projected commit list, shaped for direct
// rendering without re-deriving anything from a Record.
type CommitRow struct {
	Hash      string `json:"hash"`
	ShortHash string `json:"short_hash"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Subject   string `json:"subject"`
}

// Projection is the read-only view of State the UI (or a scripted test
// harness) consumes. The core never looks at a Projection; it only
// produces one on request.
type Projection struct {
	ActiveFile     string      `json:"active_file"`
	HasActiveFile  bool        `json:"has_active_file"`
	Commits        []CommitRow `json:"commits"`
	SelectedCommit string      `json:"selected_commit,omitempty"`
	HasSelected    bool        `json:"has_selected"`
	ContentLines   []string    `json:"content_lines"`
	CursorLine     int         `json:"cursor_line"`
	ScrollOffset   int         `json:"scroll_offset"`
	ViewportHeight int         `json:"viewport_height"`
	Search         SearchState `json:"search"`
	IsLoading      bool        `json:"is_loading"`
	Status         string      `json:"status"`
}

// Snapshot returns the current Projection. Scroll offset and viewport
// height are owned by the UI layer in the running application; State only
// carries them here so a JSON dump can round-trip the full persistence
// schema even when the core is driven headlessly.
func (s *State) Snapshot(scrollOffset, viewportHeight int) Projection {
	rows := make([]CommitRow, 0, len(s.history))
	for _, rec := range s.history {
		rows = append(rows, CommitRow{
			Hash:      rec.ID.String(),
			ShortHash: rec.ShortID,
			Author:    rec.AuthorName,
			Date:      rec.Timestamp,
			Subject:   rec.Subject,
		})
	}

	p := Projection{
		ActiveFile:     s.activeFile,
		HasActiveFile:  s.hasActive,
		Commits:        rows,
		HasSelected:    s.hasSelected,
		ContentLines:   s.contentLines,
		CursorLine:     s.cursorLine,
		ScrollOffset:   scrollOffset,
		ViewportHeight: viewportHeight,
		Search:         s.search,
		IsLoading:      s.isLoadingHistory,
		Status:         s.status,
	}
	if s.hasSelected {
		p.SelectedCommit = s.selectedCommit.String()
	}
	return p
}

// JSON renders p as indented JSON, the wire format a scripted test harness
// uses for fixtures and "save state" dumps.
func (p Projection) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// StartSearch begins an in-content search; the core does not perform the
// search itself, it only carries the query so the UI's search loop has
// somewhere to store its position.
func (s *State) StartSearch(query string) {
	s.search = SearchState{Query: query, Active: true}
}

// EndSearch clears search mode.
func (s *State) EndSearch() {
	s.search = SearchState{}
}

// SetSearchMatch records the line the UI's search landed on, or clears it
// with a nil line.
func (s *State) SetSearchMatch(line *int) {
	s.search.MatchLine = line
}
