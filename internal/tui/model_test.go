package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opjerryisgood-cloud/water-app/internal/storage"
	"github.com/opjerryisgood-cloud/water-app/internal/tracker"
	"github.com/opjerryisgood-cloud/water-app/internal/tui/components/history"
)

func clockAt(hhmm string) func() time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", "2024-01-01 "+hhmm, time.Local)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func newTestModel(t *testing.T, path string) (Model, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(path)
	tr := tracker.New(store, tracker.WithClock(clockAt("09:00")))
	m := NewModel(tr)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return next.(Model), store
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = next.(Model)
		// follow component messages one level deep
		if cmd != nil {
			if out := cmd(); out != nil {
				if del, ok := out.(history.DeleteMsg); ok {
					next, _ = m.Update(del)
					m = next.(Model)
				}
			}
		}
	}
	return m
}

func TestPresetKeysPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water_record.json")
	m, store := newTestModel(t, path)

	m = press(t, m, "1", "2", "3")

	assert.Equal(t, 900, m.summary.Total)
	assert.Equal(t, 1100, m.summary.Deficit)
	require.Len(t, m.summary.History, 3)
	assert.Equal(t, 500, m.summary.History[0].Amount)

	archive, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 900, archive["2024-01-01"].Total())
	assert.Empty(t, m.warning())
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water_record.json")
	m, _ := newTestModel(t, path)
	m = press(t, m, "1", "2", "3")

	// cursor starts on the newest drink (500 ml, index 2)
	m = press(t, m, "d")
	require.Equal(t, StateConfirmDelete, m.state)
	assert.Equal(t, 2, m.deleteIndex)
	assert.Contains(t, m.View(), "500 ml")

	m = press(t, m, "n")
	assert.Equal(t, StateMain, m.state)
	assert.Equal(t, 900, m.summary.Total)

	m = press(t, m, "d", "y")
	assert.Equal(t, StateMain, m.state)
	assert.Equal(t, 400, m.summary.Total)
}

func TestCustomFormEscapeCancels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water_record.json")
	m, _ := newTestModel(t, path)

	m = press(t, m, "c")
	require.Equal(t, StateCustom, m.state)
	require.NotNil(t, m.form)

	m = press(t, m, "esc")
	assert.Equal(t, StateMain, m.state)
	assert.Equal(t, 0, m.summary.Total)
}

func TestSaveFailureShowsWarning(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	m, _ := newTestModel(t, filepath.Join(blocker, "water_record.json"))
	m = press(t, m, "2")

	assert.Equal(t, 300, m.summary.Total, "in-memory state stays authoritative")
	assert.Contains(t, m.warning(), "Could not save")
	assert.Contains(t, m.View(), "Could not save")
}

func TestLoadFailureShowsWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water_record.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	m, _ := newTestModel(t, path)

	assert.NotEmpty(t, m.loadWarning)
	assert.Equal(t, 0, m.summary.Total)
}

func TestQuitAndHelp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water_record.json")
	m, _ := newTestModel(t, path)

	m = press(t, m, "?")
	assert.True(t, m.help.ShowAll)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}

func TestViewShowsModeAndGoal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water_record.json")
	m, _ := newTestModel(t, path)

	view := m.View()
	assert.Contains(t, view, "Local file")
	assert.Contains(t, view, "2024-01-01")
	assert.True(t, strings.Contains(view, "2000 ml to go"), view)
}
