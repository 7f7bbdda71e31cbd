package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yigit/unirecords/internal/app/auth"
)

type navEntry struct {
	item auth.NavItem
}

func (e navEntry) Title() string       { return e.item.Label }
func (e navEntry) Description() string { return "unirecords " + e.item.Command }
func (e navEntry) FilterValue() string { return e.item.Label + " " + e.item.Command }

// MenuModel lists the pages the signed-in role may open
type MenuModel struct {
	list     list.Model
	chosen   *auth.NavItem
	quitting bool
}

// NewMenuModel builds a menu over items.
func NewMenuModel(title string, items []auth.NavItem) *MenuModel {
	entries := make([]list.Item, 0, len(items))
	for _, item := range items {
		entries = append(entries, navEntry{item: item})
	}
	l := list.New(entries, list.NewDefaultDelegate(), 48, 20)
	l.Title = title
	l.SetShowStatusBar(false)
	return &MenuModel{list: l}
}

// Init implements tea.Model
func (m *MenuModel) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if entry, ok := m.list.SelectedItem().(navEntry); ok {
				item := entry.item
				m.chosen = &item
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *MenuModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Chosen returns the selected page, if any.
func (m *MenuModel) Chosen() (auth.NavItem, bool) {
	if m.chosen == nil {
		return auth.NavItem{}, false
	}
	return *m.chosen, true
}

// RunMenu shows the menu and returns the chosen page.
func RunMenu(title string, items []auth.NavItem, opts ...tea.ProgramOption) (auth.NavItem, error) {
	final, err := tea.NewProgram(NewMenuModel(title, items), opts...).Run()
	if err != nil {
		return auth.NavItem{}, err
	}
	if m, ok := final.(*MenuModel); ok {
		if item, ok := m.Chosen(); ok {
			return item, nil
		}
	}
	return auth.NavItem{}, ErrCancelled
}
