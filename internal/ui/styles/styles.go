package styles

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "●"
	SymbolPending = "○"
	SymbolCommit  = "●"
	SymbolArrow   = "→"
)

// NoColor checks if colors should be disabled.
func NoColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("GIT_LINEAGE_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled: no animations, no
// spinner, simplified output.
func IsAccessible() bool {
	return os.Getenv("GIT_LINEAGE_ACCESSIBLE") == "1" || os.Getenv("GIT_LINEAGE_ACCESSIBLE") == "true"
}

// Base text styles
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Dim       = lipgloss.NewStyle().Foreground(Muted)
	Underline = lipgloss.NewStyle().Underline(true)
)

// Semantic styles - use these instead of raw colors
var (
	// Status indicators for the git status letters (M, A, D, ?, space).
	Added     = lipgloss.NewStyle().Foreground(ColorAdded)
	Deleted   = lipgloss.NewStyle().Foreground(ColorDeleted)
	Modified  = lipgloss.NewStyle().Foreground(ColorModified)
	Untracked = lipgloss.NewStyle().Foreground(ColorUntracked)
	Renamed   = lipgloss.NewStyle().Foreground(ColorRenamed)

	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Commit display
	HashStyle    = lipgloss.NewStyle().Foreground(ColorHash)
	AuthorStyle  = lipgloss.NewStyle().Foreground(Success)
	DateStyle    = lipgloss.NewStyle().Foreground(Muted)
	MessageStyle = lipgloss.NewStyle()

	// Diff display, used when the diff toggle renders a commit's file
	// against its first parent in one column: removed lines first, then
	// the new file with added lines marked.
	DiffAddLine     = lipgloss.NewStyle().Foreground(ColorDiffAdd)
	DiffRemoveLine  = lipgloss.NewStyle().Foreground(ColorDiffRemove)
	DiffContextLine = lipgloss.NewStyle().Foreground(ColorDiffContext)
	DiffHunkHeader  = lipgloss.NewStyle().Foreground(ColorDiffHunk)
	DiffFileHeader  = lipgloss.NewStyle().Bold(true)

	// Interactive TUI
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)
	FocusedBorder = lipgloss.NewStyle().Foreground(Accent)
	PlainBorder   = lipgloss.NewStyle().Foreground(BgBorder)

	// Help bar
	HelpKey   = lipgloss.NewStyle().Foreground(Accent)
	HelpValue = lipgloss.NewStyle().Foreground(Muted)
)

// render applies a style if colors are enabled.
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// Hash formats a commit id, always lowercase, optionally shortened to the
// 8-character short id spec.md §3 defines.
func Hash(hash string, short bool) string {
	hash = strings.ToLower(hash)
	if short && len(hash) > 8 {
		hash = hash[:8]
	}
	return render(HashStyle, hash)
}

// Author formats an author name.
func Author(name string) string {
	return render(AuthorStyle, name)
}

// Date formats a date/timestamp.
func Date(date string) string {
	return render(DateStyle, date)
}

// StatusPrefix renders a git status letter (M, A, D, ?, or space for
// unmodified).
func StatusPrefix(status string) string {
	switch status {
	case "A":
		return render(Added, "A")
	case "M":
		return render(Modified, "M")
	case "D":
		return render(Deleted, "D")
	case "?":
		return render(Untracked, "?")
	default:
		return " "
	}
}

// SuccessMsg formats a success message with checkmark.
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message.
func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message.
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

// InfoMsg formats an info message.
func InfoMsg(msg string) string {
	return render(InfoStyle, msg)
}

// MutedMsg formats muted/secondary text.
func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}

// SectionHeader formats a section header.
func SectionHeader(title string) string {
	return render(Bold, title)
}

// HelpLine formats a help line (key, description).
func HelpLine(key, description string) string {
	return fmt.Sprintf("  %s %s", render(HelpKey, key), render(MutedStyle, description))
}

// Indent returns text indented by n spaces.
func Indent(text string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func Mute(s string) string      { return render(MutedStyle, s) }
func ErrorText(s string) string { return render(ErrorStyle, s) }
