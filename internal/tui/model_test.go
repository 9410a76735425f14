package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/ranking"
)

type fakeEngine struct {
	status    model.JobStatus
	sections  ranking.Sections
	versions  []int64
	progress  model.Progress
	cancelled int
}

func (f *fakeEngine) Status() model.JobStatus  { return f.status }
func (f *fakeEngine) Progress() model.Progress { return f.progress }
func (f *fakeEngine) Categorize(version int64) ranking.Sections {
	f.versions = append(f.versions, version)
	return f.sections
}

func (f *fakeEngine) Cancel() {
	f.cancelled++
	if f.status == model.JobRunning {
		f.status = model.JobCancelled
	}
}

func score(id, name string, pct int) model.RecipeScore {
	return model.RecipeScore{
		Recipe:          model.Recipe{ID: id, Name: name},
		MatchPercentage: pct,
	}
}

func newFake() *fakeEngine {
	pasta := score("pasta", "Pasta", 100)
	soup := score("soup", "Soup", 60)
	return &fakeEngine{
		status:   model.JobCompleted,
		progress: model.Progress{Done: 2, Total: 2},
		sections: ranking.Sections{
			ReadyToCook: []model.RecipeScore{pasta},
			UseItUp:     []model.RecipeScore{pasta, soup},
			AlmostThere: []model.RecipeScore{soup},
		},
	}
}

func newTestModel(e Engine) Model {
	return New(context.Background(), Config{
		Engine:  e,
		Refresh: func(context.Context) (int64, error) { return 3, nil },
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_RefreshLoadsSections(t *testing.T) {
	fake := newFake()
	m := newTestModel(fake)

	_, ok := m.Selected()
	assert.False(t, ok, "nothing is selected before the first refresh")

	m, _ = update(t, m, refreshedMsg{version: 3})

	assert.Equal(t, int64(3), m.Version())
	assert.Equal(t, []int64{3}, fake.versions)

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "pasta", selected.Recipe.ID)
}

func TestModel_Navigation(t *testing.T) {
	tests := []struct {
		name        string
		keys        []string
		wantRecipe  string
		wantSection int
		wantCursor  int
	}{
		{name: "starts on ready to cook", wantRecipe: "pasta"},
		{name: "down stops at the last recipe", keys: []string{"j", "j"}, wantRecipe: "pasta"},
		{name: "tab moves to use it up", keys: []string{"tab"}, wantSection: 1, wantRecipe: "pasta"},
		{name: "down within section", keys: []string{"tab", "j"}, wantSection: 1, wantCursor: 1, wantRecipe: "soup"},
		{name: "up after down", keys: []string{"tab", "j", "k"}, wantSection: 1, wantRecipe: "pasta"},
		{name: "changing section resets cursor", keys: []string{"tab", "j", "tab"}, wantSection: 2, wantRecipe: "soup"},
		{name: "shift tab wraps around", keys: []string{"shift+tab"}, wantSection: 4},
		{name: "arrow keys also move sections", keys: []string{"l", "l", "h"}, wantSection: 1, wantRecipe: "pasta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := update(t, newTestModel(newFake()), refreshedMsg{version: 1})
			for _, k := range tt.keys {
				m, _ = update(t, m, keyMsg(k))
			}

			assert.Equal(t, tt.wantSection, m.section)
			assert.Equal(t, tt.wantCursor, m.cursor)

			selected, ok := m.Selected()
			if tt.wantRecipe == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantRecipe, selected.Recipe.ID)
		})
	}
}

func TestModel_PollClampsCursor(t *testing.T) {
	fake := newFake()
	m, _ := update(t, newTestModel(fake), refreshedMsg{version: 1})
	m, _ = update(t, m, keyMsg("tab"))
	m, _ = update(t, m, keyMsg("j"))
	require.Equal(t, 1, m.cursor)

	fake.sections.UseItUp = fake.sections.UseItUp[:1]
	m, _ = update(t, m, tickMsg{})

	assert.Equal(t, 0, m.cursor)
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		status        model.JobStatus
		wantCancelled int
	}{
		{name: "quit while running cancels", key: "q", status: model.JobRunning, wantCancelled: 1},
		{name: "ctrl+c while running cancels", key: "ctrl+c", status: model.JobRunning, wantCancelled: 1},
		{name: "quit after completion leaves job alone", key: "esc", status: model.JobCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			fake.status = tt.status

			m, cmd := update(t, newTestModel(fake), keyMsg(tt.key))

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Equal(t, tt.wantCancelled, fake.cancelled)
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_CancelKey(t *testing.T) {
	fake := newFake()
	fake.status = model.JobRunning
	fake.progress = model.Progress{Done: 1, Total: 2}

	m, _ := update(t, newTestModel(fake), refreshedMsg{version: 1})
	m, _ = update(t, m, keyMsg("c"))

	assert.Equal(t, 1, fake.cancelled)
	assert.Equal(t, model.JobCancelled, m.status)
	assert.Contains(t, m.View(), "results are partial")
}

func TestModel_Refresh(t *testing.T) {
	var calls int
	fake := newFake()
	m := New(context.Background(), Config{
		Engine: fake,
		Refresh: func(context.Context) (int64, error) {
			calls++
			return 7, nil
		},
	})

	m, cmd := update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.refreshing)

	_, again := update(t, m, keyMsg("r"))
	assert.Nil(t, again, "a second refresh waits for the first")

	msg := cmd()
	assert.Equal(t, refreshedMsg{version: 7}, msg)
	assert.Equal(t, 1, calls)

	m, _ = update(t, m, msg)
	assert.False(t, m.refreshing)
	assert.Equal(t, int64(7), m.Version())
}

func TestModel_RefreshError(t *testing.T) {
	m := newTestModel(newFake())
	m, _ = update(t, m, refreshedMsg{err: errors.New("failed to load inventory: disk gone")})

	assert.Contains(t, m.View(), "failed to load inventory: disk gone")

	m, _ = update(t, m, refreshedMsg{version: 2})
	assert.NotContains(t, m.View(), "disk gone")
}

func TestModel_View(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		m, _ := update(t, newTestModel(newFake()), refreshedMsg{version: 3})
		view := m.View()

		assert.Contains(t, view, "2/2 recipes scored against inventory version 3")
		assert.Contains(t, view, "Ready to Cook (1)")
		assert.Contains(t, view, "Use It Up (2)")
		assert.Contains(t, view, "Pasta")
		assert.Contains(t, view, "Match: ")
	})

	t.Run("running", func(t *testing.T) {
		fake := newFake()
		fake.status = model.JobRunning
		fake.progress = model.Progress{Done: 1, Total: 2}

		m, _ := update(t, newTestModel(fake), refreshedMsg{version: 3})
		view := m.View()

		assert.Contains(t, view, "Matching recipes")
		assert.Contains(t, view, "1/2")
	})

	t.Run("empty section", func(t *testing.T) {
		m, _ := update(t, newTestModel(newFake()), refreshedMsg{version: 3})
		m, _ = update(t, m, keyMsg("shift+tab"))

		assert.Contains(t, m.View(), "Nothing here yet.")
	})
}

func TestRun_RequiresDependencies(t *testing.T) {
	err := Run(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine is required")

	err = Run(context.Background(), Config{Engine: newFake()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh function is required")
}
