package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateCustom:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.viewMain()
	}

	var banner string
	if w := m.warning(); w != "" {
		banner = warningStyle.Render("⚠ " + w)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("💧 Water Tracker"),
		modeStyle.Render(m.modeLabel()),
		modeStyle.Render(m.summary.Date),
	)
}

func (m Model) viewMain() string {
	s := m.summary

	total := totalStyle.Render(fmt.Sprintf("%d ml", s.Total))
	goal := fmt.Sprintf(" / %d ml", s.Goal)

	var status string
	if s.GoalMet() {
		status = goalMetStyle.Render("Goal met!")
	} else {
		status = remainingStyle.Render(fmt.Sprintf("%d ml to go", s.Deficit))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		total+goal,
		"",
		fmt.Sprintf("%s %3.0f%%", m.progress.ViewAs(s.ProgressRatio), s.ProgressRatio*100),
		status,
		"",
		m.history.View(),
	))
}

func (m Model) viewConfirmDelete() string {
	question := "Delete this drink?"
	if h, ok := m.pendingDelete(); ok {
		question = fmt.Sprintf("Delete the %d ml drink from %s?", h.Amount, h.Time)
	}
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
