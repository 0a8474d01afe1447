package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkarlsen/timesheet/internal/timeutil"
)

var (
	baseStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	hintStyle   = lipgloss.NewStyle().Faint(true)
	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (m Model) statusView() string {
	if m.tracker.CurrentProject() == "" {
		return hintStyle.Render("Last logged: -")
	}

	status := fmt.Sprintf("Last logged: %s", m.tracker.CurrentProject())
	if !m.lastSwitch.IsZero() {
		status += " at " + m.lastSwitch.Format(m.clock)
	}

	return hintStyle.Render(status)
}

func (m Model) projectsView() string {
	var s strings.Builder

	totals := m.tracker.Totals()

	for i, project := range m.projects {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		name := fmt.Sprintf("%-25s", project)
		if project == m.tracker.CurrentProject() && m.tracker.Active() {
			name = activeStyle.Render(name)
		}

		s.WriteString(cursor)
		s.WriteString(name)
		s.WriteString(timeutil.FormatSeconds(totals[project]))
		s.WriteString("\n")
	}

	return s.String()
}

func (m Model) totalView() string {
	var total time.Duration

	for _, d := range m.tracker.Totals() {
		total += d
	}

	return fmt.Sprintf(
		"Total time logged today: %s",
		timeutil.FormatSeconds(total),
	)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("What are you working on?"))
	s.WriteString("\n\n")
	s.WriteString(m.statusView())
	s.WriteString("\n\n")
	s.WriteString(m.projectsView())
	s.WriteString("\n")
	s.WriteString(m.totalView())

	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(m.err.Error()))
	}

	s.WriteString("\n\n")
	s.WriteString(m.help.ShortHelpView([]key.Binding{
		defaultKeymap.up,
		defaultKeymap.down,
		defaultKeymap.enter,
		defaultKeymap.quit,
	}))

	return baseStyle.Render(s.String())
}
