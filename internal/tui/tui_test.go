package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models"
)

func typeText(m tea.Model, s string) tea.Model {
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return model
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

type fakeLogin struct {
	ok       bool
	err      error
	username string
	password string
	calls    int
}

func (f *fakeLogin) login(_ context.Context, username, password string) (bool, error) {
	f.calls++
	f.username, f.password = username, password
	return f.ok, f.err
}

func TestLoginSubmitsCredentials(t *testing.T) {
	fake := &fakeLogin{ok: true}
	var model tea.Model = NewLoginModel(context.Background(), fake.login, "")

	model = typeText(model, "admin")
	model, _ = press(model, tea.KeyEnter)
	model = typeText(model, "admin123")
	model, cmd := press(model, tea.KeyEnter)
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	if !strings.Contains(model.View(), msgSubmitting) {
		t.Fatalf("expected submitting notice in view")
	}
	model, cmd = model.Update(cmd())
	if !isQuit(cmd) {
		t.Fatalf("expected quit after successful login")
	}
	if !model.(*LoginModel).Succeeded() {
		t.Fatalf("expected success")
	}
	if fake.username != "admin" || fake.password != "admin123" {
		t.Fatalf("got credentials %q/%q", fake.username, fake.password)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	fake := &fakeLogin{ok: true}
	var model tea.Model = NewLoginModel(context.Background(), fake.login, "admin")
	model, cmd := press(model, tea.KeyEnter)
	if cmd != nil {
		t.Fatalf("expected no command without a password")
	}
	if !strings.Contains(model.View(), msgMissingFields) {
		t.Fatalf("expected missing-fields message")
	}
	if fake.calls != 0 {
		t.Fatalf("login should not be called")
	}
}

func TestLoginRejectedClearsPassword(t *testing.T) {
	fake := &fakeLogin{ok: false}
	m := NewLoginModel(context.Background(), fake.login, "admin")
	var model tea.Model = m
	model = typeText(model, "wrong")
	model, cmd := press(model, tea.KeyEnter)
	model, cmd = model.Update(cmd())
	if isQuit(cmd) {
		t.Fatalf("rejected login must not quit")
	}
	if m.Succeeded() {
		t.Fatalf("unexpected success")
	}
	if m.inputs[fieldPassword].Value() != "" {
		t.Fatalf("password should be cleared")
	}
	if !strings.Contains(model.View(), msgLoginFailed) {
		t.Fatalf("expected failure message")
	}
}

func TestLoginErrorShown(t *testing.T) {
	fake := &fakeLogin{err: errors.New("ไม่สามารถเชื่อมต่อเซิร์ฟเวอร์")}
	var model tea.Model = NewLoginModel(context.Background(), fake.login, "admin")
	model = typeText(model, "pw")
	model, cmd := press(model, tea.KeyEnter)
	model, _ = model.Update(cmd())
	if !strings.Contains(model.View(), "ไม่สามารถเชื่อมต่อเซิร์ฟเวอร์") {
		t.Fatalf("expected error text in view")
	}
}

func TestLoginFocusAndCancel(t *testing.T) {
	m := NewLoginModel(context.Background(), (&fakeLogin{}).login, "")
	if m.focus != fieldUsername {
		t.Fatalf("expected username focus")
	}
	press(m, tea.KeyTab)
	if m.focus != fieldPassword {
		t.Fatalf("tab should move to password")
	}
	press(m, tea.KeyShiftTab)
	if m.focus != fieldUsername {
		t.Fatalf("shift+tab should move back")
	}
	if _, cmd := press(m, tea.KeyEsc); !isQuit(cmd) || !m.cancelled {
		t.Fatalf("esc should cancel")
	}

	prefilled := NewLoginModel(context.Background(), (&fakeLogin{}).login, "student")
	if prefilled.focus != fieldPassword {
		t.Fatalf("prefilled username should focus password")
	}
}

func TestMenuChoosesItem(t *testing.T) {
	items := auth.NavFor(models.RoleAdmin)
	var model tea.Model = NewMenuModel("เมนู", items)
	model, _ = press(model, tea.KeyDown)
	model, cmd := press(model, tea.KeyEnter)
	if !isQuit(cmd) {
		t.Fatalf("enter should quit the menu")
	}
	got, ok := model.(*MenuModel).Chosen()
	if !ok || got.Command != items[1].Command {
		t.Fatalf("chosen = %+v, want %s", got, items[1].Command)
	}
}

func TestMenuEscapeChoosesNothing(t *testing.T) {
	var model tea.Model = NewMenuModel("เมนู", auth.NavFor(models.RoleStudent))
	model, cmd := press(model, tea.KeyEsc)
	if !isQuit(cmd) {
		t.Fatalf("esc should quit")
	}
	if _, ok := model.(*MenuModel).Chosen(); ok {
		t.Fatalf("nothing should be chosen")
	}
	if model.View() != "" {
		t.Fatalf("quitting menu should render empty")
	}
}
