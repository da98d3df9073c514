package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/tui/components/history"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-8, 10), 60)
		m.history.SetSize(max(msg.Width-4, 10), max(msg.Height-16, 3))
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()

	case history.DeleteMsg:
		m.deleteIndex = msg.Index
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateCustom:
		return m.updateCustom(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Small):
			m.apply(m.tracker.AddPreset(constants.PresetSmallML))
			return m, nil
		case key.Matches(msg, m.keys.Medium):
			m.apply(m.tracker.AddPreset(constants.PresetMediumML))
			return m, nil
		case key.Matches(msg, m.keys.Large):
			m.apply(m.tracker.AddPreset(constants.PresetLargeML))
			return m, nil
		case key.Matches(msg, m.keys.Custom):
			m.customForm = &CustomFormModel{}
			m.form = newCustomForm(m.customForm)
			m.state = StateCustom
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m Model) updateCustom(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && (msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC) {
		m.state = StateMain
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		// invalid input is dropped by the tracker without a message
		m.apply(m.tracker.AddCustom(m.customForm.Amount))
		m.state = StateMain
		return m, nil
	case huh.StateAborted:
		m.state = StateMain
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.apply(m.tracker.DeleteEvent(m.deleteIndex))
		m.state = StateMain
	case "n", "N", "esc", "q":
		m.state = StateMain
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}
