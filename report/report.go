// Package report builds the hours-per-project-per-day summary over the full
// session history.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/maruel/natural"

	"github.com/mkarlsen/timesheet/internal/session"
	"github.com/mkarlsen/timesheet/internal/timeutil"
)

// BreakProject is excluded from the secondary total row so a workday's
// billable hours are visible at a glance.
const BreakProject = "Break"

const dayHeaderFormat = "Mon 02 Jan"

// Summary is a pivot of logged hours keyed by project and calendar day.
type Summary struct {
	// Days holds the calendar days with any logged time, ascending.
	Days []string `json:"days"`
	// Projects holds the project names with any logged time, sorted.
	Projects []string `json:"projects"`
	// Hours maps project name to day to logged hours.
	Hours map[string]map[string]float64 `json:"hours"`
}

// Build pivots the given sessions into per-project, per-day hours. Open
// sessions are counted as the time elapsed up to now so a summary taken
// mid-session reflects the live total.
func Build(sessions []session.Session, now time.Time) *Summary {
	s := &Summary{
		Hours: make(map[string]map[string]float64),
	}

	daySet := make(map[string]struct{})

	for _, sess := range sessions {
		day := timeutil.DayKey(sess.StartTime)
		hours := sess.ElapsedAt(now).Hours()

		if s.Hours[sess.Project] == nil {
			s.Hours[sess.Project] = make(map[string]float64)
		}

		s.Hours[sess.Project][day] += hours
		daySet[day] = struct{}{}
	}

	for day := range daySet {
		s.Days = append(s.Days, day)
	}

	sort.Strings(s.Days)

	for project := range s.Hours {
		s.Projects = append(s.Projects, project)
	}

	// natural ordering keeps "Project 2" ahead of "Project 10"
	sort.Slice(s.Projects, func(i, j int) bool {
		return natural.Less(s.Projects[i], s.Projects[j])
	})

	return s
}

// Empty reports whether the summary has no logged time at all.
func (s *Summary) Empty() bool {
	return len(s.Days) == 0
}

// Total returns the hours logged across all projects on the given day.
func (s *Summary) Total(day string) float64 {
	var total float64

	for _, project := range s.Projects {
		total += s.Hours[project][day]
	}

	return total
}

// TotalExcluding returns the hours logged on the given day across all
// projects except the named one.
func (s *Summary) TotalExcluding(project, day string) float64 {
	return s.Total(day) - s.Hours[project][day]
}

// Table renders the pivot as rows for display, with one column per day, a
// TOTAL row, and a TOTAL row that leaves breaks out.
func (s *Summary) Table() [][]string {
	header := []string{"PROJECT"}

	for _, day := range s.Days {
		label := day

		if t, err := time.Parse("2006-01-02", day); err == nil {
			label = t.Format(dayHeaderFormat)
		}

		header = append(header, label)
	}

	rows := [][]string{header}

	for _, project := range s.Projects {
		row := []string{project}

		for _, day := range s.Days {
			row = append(row, fmt.Sprintf("%.2f", s.Hours[project][day]))
		}

		rows = append(rows, row)
	}

	totalRow := []string{"TOTAL"}
	for _, day := range s.Days {
		totalRow = append(totalRow, fmt.Sprintf("%.2f", s.Total(day)))
	}

	rows = append(rows, totalRow)

	noBreaksRow := []string{"TOTAL (excl breaks)"}
	for _, day := range s.Days {
		noBreaksRow = append(
			noBreaksRow,
			fmt.Sprintf("%.2f", s.TotalExcluding(BreakProject, day)),
		)
	}

	return append(rows, noBreaksRow)
}

// ToJSON returns the summary in a machine-readable form.
func (s *Summary) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}
