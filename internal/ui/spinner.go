package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/schani/git-lineage-sub000/internal/ui/styles"
)

// Spinner is a simple animated spinner for the headless CLI path: the log
// command shows it on a terminal while its history stream runs.
type Spinner struct {
	message string
	done    chan struct{}
	stopped bool
}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation in the background.
func (s *Spinner) Start() {
	if styles.IsAccessible() || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(s.message + "...")
		return
	}

	go func() {
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		i := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				fmt.Print("\r\033[K")
				return
			case <-ticker.C:
				frame := style.Render(frames[i%len(frames)])
				fmt.Printf("\r\033[K%s %s", frame, s.message)
				i++
			}
		}
	}()
}

// Stop stops the spinner.
func (s *Spinner) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)
	time.Sleep(20 * time.Millisecond)
}

// Success stops the spinner and shows a success message.
func (s *Spinner) Success(msg string) {
	s.Stop()
	fmt.Println(styles.SuccessMsg(msg))
}

// Error stops the spinner and shows an error message.
func (s *Spinner) Error(msg string) {
	s.Stop()
	fmt.Println(styles.ErrorMsg(msg))
}

// FormatDuration formats a duration as a compact human-readable string,
// e.g. "45s", "1m5s", "2h".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// FormatCount formats a count with thousand separators, used by the log
// command when reporting how many commits a history stream delivered.
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
