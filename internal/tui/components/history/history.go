// Package history renders today's drinks, newest first.
package history

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opjerryisgood-cloud/water-app/internal/models"
)

// DeleteMsg asks the parent to remove the drink at Index from today's log.
type DeleteMsg struct {
	Index int
}

type Item struct {
	Entry models.HistoryEntry
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  +%d ml", i.Entry.Time, i.Entry.Amount)
}

func (i Item) Description() string {
	return fmt.Sprintf("drink #%d", i.Entry.OriginalIndex+1)
}

func (i Item) FilterValue() string { return i.Entry.Time }

type KeyMap struct {
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []models.HistoryEntry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{
		list: l,
		keys: DefaultKeyMap(),
	}
}

// SetEntries replaces the rows, keeping the cursor in range.
func (m *Model) SetEntries(entries []models.HistoryEntry) {
	m.list.SetItems(toItems(entries))
	if n := len(entries); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

// Selected returns the highlighted drink.
func (m Model) Selected() (models.HistoryEntry, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.HistoryEntry{}, false
	}
	return i.Entry, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Delete) {
		if entry, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteMsg{Index: entry.OriginalIndex} }
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No drinks yet today.\n  Press 1, 2 or 3 to log one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func toItems(entries []models.HistoryEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}
