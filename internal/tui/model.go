package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
	"github.com/opjerryisgood-cloud/water-app/internal/tracker"
	"github.com/opjerryisgood-cloud/water-app/internal/tui/components/history"
)

// refreshInterval drives the date header and midnight rollover while idle.
const refreshInterval = time.Minute

type SessionState int

const (
	StateMain SessionState = iota
	StateCustom
	StateConfirmDelete
)

type CustomFormModel struct {
	Amount string
}

type tickMsg time.Time

type Model struct {
	tracker     *tracker.Tracker
	state       SessionState
	keys        KeyMap
	help        help.Model
	history     history.Model
	progress    progress.Model
	form        *huh.Form
	customForm  *CustomFormModel
	summary     models.Summary
	loadWarning string
	saveWarning string
	deleteIndex int
	quitting    bool
	width       int
	height      int
}

func NewModel(tr *tracker.Tracker) Model {
	summary := tr.Summary()

	m := Model{
		tracker:  tr,
		state:    StateMain,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		history:  history.New(summary.History, 0, 0),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		summary:  summary,
	}
	if err := tr.LoadErr(); err != nil {
		m.loadWarning = "Saved drinks could not be read, starting with an empty log."
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Small, m.keys.Medium, m.keys.Large, m.keys.Custom, m.keys.Delete, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	add := []key.Binding{m.keys.Small, m.keys.Medium, m.keys.Large, m.keys.Custom}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Delete}
	global := []key.Binding{m.keys.Help, m.keys.Quit}

	return [][]key.Binding{add, navigation, global}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// apply takes the summary returned by a tracker operation and surfaces any
// save failure on the warning line.
func (m *Model) apply(s models.Summary) {
	m.summary = s
	m.history.SetEntries(s.History)

	if err := m.tracker.LastSaveErr(); err != nil {
		m.saveWarning = fmt.Sprintf("Could not save (%v). Changes are kept until you quit.", err)
	} else {
		m.saveWarning = ""
	}
}

// refresh re-reads today's summary without touching the save state.
func (m *Model) refresh() {
	m.summary = m.tracker.Summary()
	m.history.SetEntries(m.summary.History)
}

func (m Model) warning() string {
	if m.saveWarning != "" {
		return m.saveWarning
	}
	return m.loadWarning
}

func (m Model) modeLabel() string {
	if m.tracker.Backend() == constants.BackendSecureKV {
		return "🔒 Secure storage"
	}
	return "📄 Local file"
}

func (m Model) pendingDelete() (models.HistoryEntry, bool) {
	for _, h := range m.summary.History {
		if h.OriginalIndex == m.deleteIndex {
			return h, true
		}
	}
	return models.HistoryEntry{}, false
}

func newCustomForm(f *CustomFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Custom amount (ml)").
				Placeholder("250").
				CharLimit(len(strconv.Itoa(constants.MaxDrinkML))).
				Value(&f.Amount),
		),
	).WithShowHelp(false)
}
