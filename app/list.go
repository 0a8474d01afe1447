package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mkarlsen/timesheet/internal/session"
	"github.com/mkarlsen/timesheet/internal/timeutil"
	"github.com/mkarlsen/timesheet/internal/ui"
	"github.com/mkarlsen/timesheet/report"
)

const noSessionsMsg = "No sessions found"

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(w io.Writer, sessions []session.Session) {
	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		duration := ui.Green("running")

		if !sess.Open() {
			duration = timeutil.FormatSeconds(*sess.Duration)
			if *sess.Duration < 0 {
				duration = ui.Red(duration)
			}
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			sess.StartTime.Format("Jan 02, 2006 03:04:05 PM"),
			sess.Project,
			duration,
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "START", "PROJECT", "DURATION"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

func printSessionsJSON(w io.Writer, sessions []session.Session) error {
	b, err := json.Marshal(sessions)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// printSummaryTable prints the hours pivot to the command-line.
func printSummaryTable(w io.Writer, s *report.Summary) {
	ui.PrintTable(s.Table(), w)
}
