// Package tui provides an interactive browser over the discovery sections.
//
// The browser polls the engine while a match run is in flight, so sections
// fill in as recipes are scored. Partial results are always safe to show.
package tui

import (
	"context"
	"time"

	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/ranking"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Engine is the part of the match engine the browser reads from.
type Engine interface {
	Status() model.JobStatus
	Progress() model.Progress
	Categorize(version int64) ranking.Sections
	Cancel()
}

// RefreshFunc reloads recipes and inventory, starts a new match run and
// returns the inventory version it runs against.
type RefreshFunc func(ctx context.Context) (int64, error)

// Config holds browser dependencies.
type Config struct {
	Engine   Engine
	Refresh  RefreshFunc
	Theme    *Theme
	Interval time.Duration
}

const defaultInterval = 150 * time.Millisecond

type tickMsg time.Time

type refreshedMsg struct {
	err     error
	version int64
}

// Model holds the browser state.
type Model struct {
	ctx        context.Context
	engine     Engine
	refresh    RefreshFunc
	lastErr    error
	theme      Theme
	status     model.JobStatus
	keymap     KeyMap
	sections   []ranking.Section
	help       help.Model
	spinner    spinner.Model
	bar        progress.Model
	progress   model.Progress
	interval   time.Duration
	version    int64
	section    int
	cursor     int
	width      int
	height     int
	refreshing bool
	quitting   bool
}

// New creates a browser model. ctx bounds every refresh it starts.
func New(ctx context.Context, cfg Config) Model {
	theme := DefaultTheme
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	return Model{
		ctx:      ctx,
		engine:   cfg.Engine,
		refresh:  cfg.Refresh,
		theme:    theme,
		status:   model.JobIdle,
		keymap:   DefaultKeyMap(),
		sections: ranking.Sections{}.List(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Spinner)),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		interval: interval,
	}
}

// Init starts the first refresh along with the spinner and poll loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd(), m.tick())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(40, msg.Width/3))
		return m, nil

	case tickMsg:
		m.poll()
		return m, m.tick()

	case refreshedMsg:
		m.refreshing = false
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.version = msg.version
		m.poll()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		if m.engine.Status() == model.JobRunning {
			m.engine.Cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.current().Recipes)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.NextSection):
		m.section = (m.section + 1) % len(m.sections)
		m.cursor = 0

	case key.Matches(msg, m.keymap.PrevSection):
		m.section = (m.section + len(m.sections) - 1) % len(m.sections)
		m.cursor = 0

	case key.Matches(msg, m.keymap.Cancel):
		m.engine.Cancel()
		m.poll()

	case key.Matches(msg, m.keymap.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, m.refreshCmd()
	}

	return m, nil
}

// refreshCmd runs the refresh function off the update loop.
func (m Model) refreshCmd() tea.Cmd {
	ctx, refresh := m.ctx, m.refresh
	return func() tea.Msg {
		version, err := refresh(ctx)
		return refreshedMsg{version: version, err: err}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// poll copies the engine's current state into the model.
func (m *Model) poll() {
	m.status = m.engine.Status()
	m.progress = m.engine.Progress()
	if m.version > 0 {
		m.sections = m.engine.Categorize(m.version).List()
	}
	if n := len(m.current().Recipes); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m Model) current() ranking.Section {
	return m.sections[m.section]
}

// Selected returns the highlighted recipe, if the current section has any.
func (m Model) Selected() (model.RecipeScore, bool) {
	recipes := m.current().Recipes
	if len(recipes) == 0 {
		return model.RecipeScore{}, false
	}
	return recipes[m.cursor], true
}

// Version returns the inventory version being shown.
func (m Model) Version() int64 {
	return m.version
}
