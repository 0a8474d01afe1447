package tracker

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
)

type keymap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	quit  key.Binding
}

var defaultKeymap = keymap{
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "switch project"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "end workday"),
	),
}

// tickMsg redraws the live totals once per second.
type tickMsg time.Time

// remindMsg fires on the configured reminder cadence.
type remindMsg time.Time

// Model drives the interactive tracking screen.
type Model struct {
	tracker    *Tracker
	help       help.Model
	err        error
	projects   []string
	clock      string
	interval   time.Duration
	lastSwitch time.Time
	cursor     int
	quitting   bool
}

// NewModel returns the tracking screen for the given tracker and project
// list. The reminder interval controls how often the user is nudged to
// reclassify their activity.
func NewModel(
	t *Tracker,
	projects []string,
	interval time.Duration,
	twentyFourHour bool,
) Model {
	clock := "03:04:05 PM"
	if twentyFourHour {
		clock = "15:04:05"
	}

	m := Model{
		tracker:  t,
		help:     help.New(),
		projects: projects,
		clock:    clock,
		interval: interval,
	}

	for i, p := range projects {
		if p == t.CurrentProject() {
			m.cursor = i
			break
		}
	}

	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) remind() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return remindMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.remind())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case remindMsg:
		_ = beeep.Notify(
			"Timesheet",
			"What are you working on?",
			"",
		)

		return m, m.remind()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeymap.up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, defaultKeymap.down):
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}

		case key.Matches(msg, defaultKeymap.enter):
			m.err = m.tracker.SwitchProject(m.projects[m.cursor])
			if m.err == nil {
				m.lastSwitch = m.tracker.now()
			}

		case key.Matches(msg, defaultKeymap.quit):
			if _, err := m.tracker.EndWorkday(); err != nil {
				m.err = err
				return m, nil
			}

			m.quitting = true

			return m, tea.Quit
		}
	}

	return m, nil
}
