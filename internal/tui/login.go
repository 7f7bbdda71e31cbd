// Package tui holds the interactive terminal screens: the login form and the
// page menu.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user leaves a screen without finishing it.
var ErrCancelled = errors.New("cancelled")

const (
	msgMissingFields = "กรุณากรอกชื่อผู้ใช้และรหัสผ่าน"
	msgLoginFailed   = "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"
	msgSubmitting    = "กำลังเข้าสู่ระบบ..."
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5B8DEF")).Padding(1, 2)
)

// LoginFunc signs in; false with a nil error means the credentials were rejected.
type LoginFunc func(ctx context.Context, username, password string) (bool, error)

type loginResultMsg struct {
	ok  bool
	err error
}

const (
	fieldUsername = iota
	fieldPassword
)

// LoginModel is the username/password form
type LoginModel struct {
	ctx        context.Context
	login      LoginFunc
	inputs     []textinput.Model
	focus      int
	submitting bool
	done       bool
	cancelled  bool
	errMsg     string
}

// NewLoginModel builds the form, pre-filling username when given.
func NewLoginModel(ctx context.Context, login LoginFunc, username string) *LoginModel {
	user := textinput.New()
	user.Placeholder = "ชื่อผู้ใช้"
	user.CharLimit = 64
	user.SetValue(username)

	pass := textinput.New()
	pass.Placeholder = "รหัสผ่าน"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	m := &LoginModel{ctx: ctx, login: login, inputs: []textinput.Model{user, pass}}
	if username != "" {
		m.focus = fieldPassword
	}
	m.inputs[m.focus].Focus()
	return m
}

// Init implements tea.Model
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		switch {
		case msg.err != nil:
			m.errMsg = msg.err.Error()
		case !msg.ok:
			m.errMsg = msgLoginFailed
		default:
			m.done = true
			return m, tea.Quit
		}
		m.inputs[fieldPassword].SetValue("")
		return m, m.setFocus(fieldPassword)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
		if m.submitting {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			return m, m.setFocus((m.focus + 1) % len(m.inputs))
		case tea.KeyShiftTab, tea.KeyUp:
			return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		case tea.KeyEnter:
			if m.focus < len(m.inputs)-1 {
				return m, m.setFocus(m.focus + 1)
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *LoginModel) submit() tea.Cmd {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()
	if username == "" || password == "" {
		m.errMsg = msgMissingFields
		return nil
	}
	m.errMsg = ""
	m.submitting = true
	ctx, login := m.ctx, m.login
	return func() tea.Msg {
		ok, err := login(ctx, username, password)
		return loginResultMsg{ok: ok, err: err}
	}
}

// View implements tea.Model
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ระบบจัดการข้อมูลนักศึกษา"))
	b.WriteString("\n")

	labels := []string{"ชื่อผู้ใช้", "รหัสผ่าน"}
	for i, input := range m.inputs {
		label := labelStyle.Render(labels[i])
		if i == m.focus {
			label = focusedStyle.Render(labels[i])
		}
		b.WriteString(label + "\n" + input.View() + "\n\n")
	}

	switch {
	case m.submitting:
		b.WriteString(labelStyle.Render(msgSubmitting))
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	b.WriteString(hintStyle.Render("\ntab: สลับช่อง • enter: เข้าสู่ระบบ • esc: ยกเลิก"))
	return boxStyle.Render(b.String())
}

// Succeeded reports whether the form finished with a successful login.
func (m *LoginModel) Succeeded() bool { return m.done }

// RunLogin shows the login form until the user signs in or cancels.
func RunLogin(ctx context.Context, login LoginFunc, username string, opts ...tea.ProgramOption) error {
	model := NewLoginModel(ctx, login, username)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*LoginModel); ok && m.Succeeded() {
		return nil
	}
	return ErrCancelled
}
