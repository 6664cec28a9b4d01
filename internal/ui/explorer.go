// Package ui is the external, read-only-projection-driven collaborator
// spec.md §6 describes: a bubbletea explorer that pushes typed commands at
// internal/appstate and internal/task and renders the Projection it gets
// back. It never reaches into the core's internals directly — panel focus,
// scrolling, and search state all live here, not in the core.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schani/git-lineage-sub000/internal/appstate"
	"github.com/schani/git-lineage-sub000/internal/config"
	"github.com/schani/git-lineage-sub000/internal/gitio"
	"github.com/schani/git-lineage-sub000/internal/linemap"
	"github.com/schani/git-lineage-sub000/internal/task"
	"github.com/schani/git-lineage-sub000/internal/ui/styles"
	"github.com/schani/git-lineage-sub000/internal/util"
)

// panel identifies which of the three views currently has keyboard focus.
// Cycling between them is the "panel focus cycling" command of spec.md §6.
type panel int

const (
	panelTree panel = iota
	panelCommits
	panelContent
)

func (p panel) next() panel {
	return (p + 1) % 3
}

// treeRow is one flattened, visible line of the file tree: a directory or
// a file at some depth, with its expand state carried alongside it so the
// tree can be rendered as a flat list without re-walking gitio.FileTreeNode
// on every frame.
type treeRow struct {
	node     gitio.FileTreeNode
	depth    int
	expanded bool
}

// Model is the bubbletea root model for the explorer. It owns no
// persistence and no long-lived git state of its own: appstate.State is
// the single source of truth, Model is scrolling/focus/search chrome.
type Model struct {
	repo  *gitio.Repo
	ex    *task.Executor
	state *appstate.State
	prefs config.Preferences

	focus panel
	width int
	height int
	ready  bool

	tree       gitio.FileTreeNode
	hasTree    bool
	treeExpand map[string]bool
	treeRows   []treeRow
	treeCursor int

	commitCursor int

	contentScroll int
	diffView      bool

	searchInput textinput.Model
	searching   bool

	status      string
	statusUntil time.Time
}

// resultMsg wraps a task.Result so it can travel through bubbletea's
// Update loop; the waitForResult command is the only producer.
type resultMsg struct {
	result task.Result
	ok     bool // false means the results channel closed
}

// NewModel constructs the explorer model. If initialPath is non-empty it
// is treated as though the user had just selected that file in the tree.
func NewModel(repo *gitio.Repo, ex *task.Executor, prefs config.Preferences, initialPath string) *Model {
	ti := textinput.New()
	ti.Placeholder = "search content..."
	ti.CharLimit = 200
	ti.Width = 40

	m := &Model{
		repo:        repo,
		ex:          ex,
		state:       appstate.New(repo, ex),
		prefs:       prefs,
		treeExpand:  map[string]bool{"": true},
		searchInput: ti,
	}
	if initialPath != "" {
		m.state.SetActiveFile(initialPath)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTree(), waitForResult(m.ex))
}

func (m *Model) loadTree() tea.Cmd {
	return func() tea.Msg {
		m.ex.Submit(task.Task{Kind: task.LoadFileTree})
		return nil
	}
}

// waitForResult is re-issued after every message so the model stays
// subscribed to the executor's single outbound channel.
func waitForResult(ex *task.Executor) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ex.Results()
		return resultMsg{result: r, ok: ok}
	}
}

type keyMap struct {
	Tab         key.Binding
	Up, Down    key.Binding
	PageUp, PageDown key.Binding
	Home, End   key.Binding
	Enter       key.Binding
	Search      key.Binding
	NextChange  key.Binding
	PrevChange  key.Binding
	Diff        key.Binding
	Yank        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Home:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	End:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	NextChange: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next change")),
	PrevChange: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev change")),
	Diff:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle diff")),
	Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank hash")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		return m, nil

	case resultMsg:
		if !msg.ok {
			return m, nil
		}
		m.applyResult(msg.result)
		return m, waitForResult(m.ex)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *Model) applyResult(r task.Result) {
	switch r.Kind {
	case task.FileTreeLoaded:
		m.tree = r.Tree
		m.hasTree = true
		m.rebuildTreeRows()
	case task.NextChangeFound, task.NextChangeNotFound:
		if id, ok := m.state.HandleNextChangeResult(r); ok {
			m.selectCommitByID(id)
		} else if r.Kind == task.NextChangeFound {
			m.flash("commit not in history")
		} else {
			m.flash("no further change found")
		}
	case task.Error:
		m.flash(r.Message)
	default:
		m.state.HandleResult(r)
	}
}

func (m *Model) flash(msg string) {
	m.status = msg
	m.statusUntil = time.Now().Add(3 * time.Second)
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Tab):
		m.focus = m.focus.next()
	case key.Matches(msg, keys.Diff):
		m.diffView = !m.diffView
	case key.Matches(msg, keys.Yank):
		m.yankSelectedHash()
	case key.Matches(msg, keys.Search) && m.focus == panelContent:
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.NextChange) && m.focus == panelContent:
		m.state.StartNextChangeSearch()
	case key.Matches(msg, keys.PrevChange) && m.focus == panelContent:
		m.selectPreviousChange()
	case key.Matches(msg, keys.Enter):
		m.activateSelection()
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, keys.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, keys.Home):
		m.moveCursorTo(0)
	case key.Matches(msg, keys.End):
		m.moveCursorTo(m.panelLength() - 1)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.state.EndSearch()
		return m, nil
	case "enter":
		query := m.searchInput.Value()
		m.state.StartSearch(query)
		m.applySearchMatch(query)
		m.searching = false
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.state.StartSearch(m.searchInput.Value())
	m.applySearchMatch(m.searchInput.Value())
	return m, cmd
}

// applySearchMatch scans the currently loaded content for query starting
// at the cursor line itself and wrapping, so a cursor line that still
// matches keeps the match; this is the UI-side search spec.md §9 assigns
// away from the core.
func (m *Model) applySearchMatch(query string) {
	lines := m.state.ContentLines()
	if query == "" || len(lines) == 0 {
		m.state.SetSearchMatch(nil)
		return
	}
	start := m.state.CursorLine()
	for i := 0; i < len(lines); i++ {
		idx := (start + i) % len(lines)
		if strings.Contains(lines[idx], query) {
			m.state.SetSearchMatch(&idx)
			m.state.SetCursorLine(idx)
			return
		}
	}
	m.state.SetSearchMatch(nil)
}

func (m *Model) pageSize() int {
	if m.height < 4 {
		return 10
	}
	return m.height - 4
}

func (m *Model) panelLength() int {
	switch m.focus {
	case panelTree:
		return len(m.treeRows)
	case panelCommits:
		return len(m.state.History())
	default:
		return len(m.state.ContentLines())
	}
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case panelTree:
		m.moveCursorTo(m.treeCursor + delta)
	case panelCommits:
		m.moveCursorTo(m.commitCursor + delta)
	default:
		m.moveCursorTo(m.state.CursorLine() + delta)
	}
}

func (m *Model) moveCursorTo(i int) {
	n := m.panelLength()
	if n == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	switch m.focus {
	case panelTree:
		m.treeCursor = i
	case panelCommits:
		m.commitCursor = i
	default:
		m.state.SetCursorLine(i)
	}
}

func (m *Model) activateSelection() {
	switch m.focus {
	case panelTree:
		m.activateTreeRow()
	case panelCommits:
		m.activateCommitRow()
	}
}

func (m *Model) activateTreeRow() {
	if m.treeCursor < 0 || m.treeCursor >= len(m.treeRows) {
		return
	}
	row := m.treeRows[m.treeCursor]
	if row.node.IsDir {
		m.treeExpand[row.node.Path] = !row.expanded
		m.rebuildTreeRows()
		return
	}
	m.state.SetActiveFile(row.node.Path)
	m.commitCursor = 0
	m.focus = panelCommits
}

func (m *Model) activateCommitRow() {
	history := m.state.History()
	if m.commitCursor < 0 || m.commitCursor >= len(history) {
		return
	}
	id := history[m.commitCursor].ID
	if err := m.state.SwitchCommit(id); err != nil {
		m.flash(err.Error())
		return
	}
	m.focus = panelContent
}

func (m *Model) selectCommitByID(id gitio.Oid) {
	for i, rec := range m.state.History() {
		if rec.ID.Equal(id) {
			m.commitCursor = i
			break
		}
	}
	if err := m.state.SwitchCommit(id); err != nil {
		m.flash(err.Error())
	}
}

// selectPreviousChange moves the commit selection to the next entry older
// than the current one in the already-loaded, HEAD-first history list.
// Unlike StartNextChangeSearch (spec.md §9's exact algorithm, answered by
// the core over the task channel), "previous" has no core-side contract:
// spec.md names the command but only specifies forward resolution, so this
// walks the local list rather than asking the core a question it cannot
// answer yet.
func (m *Model) selectPreviousChange() {
	history := m.state.History()
	if m.commitCursor+1 >= len(history) {
		m.flash("no older commit in history")
		return
	}
	m.commitCursor++
	_ = m.state.SwitchCommit(history[m.commitCursor].ID)
}

func (m *Model) yankSelectedHash() {
	if m.focus != panelCommits {
		return
	}
	history := m.state.History()
	if m.commitCursor < 0 || m.commitCursor >= len(history) {
		return
	}
	if err := clipboard.WriteAll(history[m.commitCursor].ID.String()); err != nil {
		m.flash("clipboard unavailable")
		return
	}
	m.flash("copied " + history[m.commitCursor].ShortID)
}

func (m *Model) rebuildTreeRows() {
	if !m.hasTree {
		m.treeRows = nil
		return
	}
	var rows []treeRow
	var walk func(nodes []gitio.FileTreeNode, depth int)
	walk = func(nodes []gitio.FileTreeNode, depth int) {
		for _, n := range nodes {
			expanded := m.treeExpand[n.Path]
			rows = append(rows, treeRow{node: n, depth: depth, expanded: expanded})
			if n.IsDir && expanded {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(m.tree.Children, 0)
	m.treeRows = rows
	if m.treeCursor >= len(rows) {
		m.treeCursor = len(rows) - 1
	}
	if m.treeCursor < 0 {
		m.treeCursor = 0
	}
}

func (m *Model) View() string {
	if !m.ready {
		return "loading…"
	}

	treeWidth := m.width / 4
	commitWidth := m.width / 3
	contentWidth := m.width - treeWidth - commitWidth - 4
	bodyHeight := m.height - 2

	tree := m.renderTree(treeWidth, bodyHeight)
	commits := m.renderCommits(commitWidth, bodyHeight)
	content := m.renderContent(contentWidth, bodyHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, commits, content)
	return body + "\n" + m.renderStatusBar()
}

func (m *Model) paneBorder(focused bool) lipgloss.Style {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if focused {
		return style.BorderForeground(styles.Accent)
	}
	return style.BorderForeground(styles.BgBorder)
}

func (m *Model) renderTree(width, height int) string {
	var b strings.Builder
	for i, row := range m.treeRows {
		prefix := strings.Repeat("  ", row.depth)
		name := row.node.Name
		if row.node.IsDir {
			marker := "▸"
			if row.expanded {
				marker = "▾"
			}
			name = marker + " " + name + "/"
		}
		line := prefix + name
		if i == m.treeCursor && m.focus == panelTree {
			line = styles.SelectedStyle.Render(padTo(line, width))
		}
		b.WriteString(line + "\n")
	}
	return m.paneBorder(m.focus == panelTree).Width(width).Height(height).Render(b.String())
}

func (m *Model) renderCommits(width, height int) string {
	var b strings.Builder
	for i, rec := range m.state.History() {
		line := fmt.Sprintf("%s %s %s", styles.Hash(rec.ShortID, false), styles.Date(rec.Timestamp), rec.Subject)
		if i == m.commitCursor && m.focus == panelCommits {
			line = styles.SelectedStyle.Render(padTo(line, width))
		}
		b.WriteString(line + "\n")
	}
	if m.state.IsLoadingHistory() {
		b.WriteString(styles.MutedMsg("loading…") + "\n")
	}
	return m.paneBorder(m.focus == panelCommits).Width(width).Height(height).Render(b.String())
}

func (m *Model) renderContent(width, height int) string {
	var b strings.Builder
	if m.diffView {
		b.WriteString(m.renderDiff())
	} else {
		for i, line := range m.state.ContentLines() {
			rendered := line
			if i == m.state.CursorLine() && m.focus == panelContent {
				rendered = styles.SelectedStyle.Render(padTo(line, width))
			}
			b.WriteString(rendered + "\n")
		}
	}
	if m.searching {
		b.WriteString("\n/" + m.searchInput.View())
	}
	return m.paneBorder(m.focus == panelContent).Width(width).Height(height).Render(b.String())
}

// renderDiff shows the selected commit's file against its first parent,
// using the same bidirectional mapping (internal/linemap) the cursor
// relocation logic relies on, so the diff toggle and the cursor-follow
// behaviour never disagree about what changed.
func (m *Model) renderDiff() string {
	to, ok := m.state.SelectedCommit()
	if !ok {
		return ""
	}
	meta, err := m.repo.Commit(to)
	if err != nil || len(meta.Parents) == 0 {
		return styles.MutedMsg("no parent to diff against")
	}
	path, _ := m.state.ActiveFile()
	mapping, err := linemap.Build(m.repo, meta.Parents[0], to, path)
	if err != nil {
		return styles.ErrorMsg(err.Error())
	}

	var b strings.Builder
	for i, line := range mapping.OldLines {
		if mapping.Forward[i] == -1 {
			b.WriteString(styles.DiffRemoveLine.Render("-"+line) + "\n")
		}
	}
	for j, line := range mapping.NewLines {
		if mapping.Reverse[j] == -1 {
			b.WriteString(styles.DiffAddLine.Render("+"+line) + "\n")
		} else {
			b.WriteString(styles.DiffContextLine.Render(" "+line) + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderStatusBar() string {
	status := m.status
	if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
		status = ""
	}
	if status == "" {
		if path, ok := m.state.ActiveFile(); ok {
			status = path
			if rel := m.selectedCommitAge(); rel != "" {
				status += "  (" + rel + ")"
			}
		} else {
			status = "select a file"
		}
	}
	help := styles.HelpLine("tab", "panel") + styles.HelpLine("enter", "select") +
		styles.HelpLine("/", "search") + styles.HelpLine("d", "diff") + styles.HelpLine("q", "quit")
	return styles.MutedMsg(status) + "  " + help
}

// selectedCommitAge renders the selected commit's author time relative to
// now (e.g. "3d ago"), for a quick status-bar hint alongside the
// absolute timestamp already shown in the commit list.
func (m *Model) selectedCommitAge() string {
	id, ok := m.state.SelectedCommit()
	if !ok {
		return ""
	}
	for _, rec := range m.state.History() {
		if rec.ID.Equal(id) {
			return util.RelativeTimeShort(rec.Time)
		}
	}
	return ""
}

func padTo(s string, width int) string {
	if width <= 0 || len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Run launches the explorer and blocks until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
