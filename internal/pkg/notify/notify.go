// Package notify shows short user-facing notices, the terminal counterpart of
// toast messages.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level of a notice
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notifier receives user-facing notices.
type Notifier interface {
	Notify(level Level, message string)
}

// Success sends a success notice.
func Success(n Notifier, message string) { n.Notify(LevelSuccess, message) }

// Error sends an error notice.
func Error(n Notifier, message string) { n.Notify(LevelError, message) }

// Warning sends a warning notice.
func Warning(n Notifier, message string) { n.Notify(LevelWarning, message) }

// Info sends an informational notice.
func Info(n Notifier, message string) { n.Notify(LevelInfo, message) }

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E3B341"))
	infoStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
)

// Console writes styled one-line notices.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole returns a Console writing to out (normally stderr).
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Notify implements Notifier
func (c *Console) Notify(level Level, message string) {
	var badge string
	switch level {
	case LevelSuccess:
		badge = successStyle.Render("✓")
	case LevelError:
		badge = errorStyle.Render("✗")
	case LevelWarning:
		badge = warningStyle.Render("!")
	default:
		badge = infoStyle.Render("i")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", badge, bodyStyle.Render(message))
}

// Notice is one recorded notification
type Notice struct {
	Level   Level
	Message string
}

// Recorder keeps notices in memory; used by tests and the interactive prompt.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier
func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	r.notices = append(r.notices, Notice{Level: level, Message: message})
	r.mu.Unlock()
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Reset forgets recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.notices = nil
	r.mu.Unlock()
}

// Discard drops every notice.
type Discard struct{}

// Notify implements Notifier
func (Discard) Notify(Level, string) {}
