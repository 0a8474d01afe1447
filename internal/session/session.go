// Package session defines work sessions and the transitions that open,
// close, and total them.
package session

import (
	"fmt"
	"time"
)

// Session is one contiguous interval of work attributed to a project. A nil
// Duration means the session is still open and accumulating time. Adjustment
// records carry signed durations, so a finalized duration may be negative.
type Session struct {
	Project   string         `json:"project"`
	StartTime time.Time      `json:"start_time"`
	Duration  *time.Duration `json:"duration,omitempty"`
}

// New returns an open session for the named project.
func New(project string, start time.Time) Session {
	return Session{Project: project, StartTime: start}
}

// Closed returns a session finalized with the given duration.
func Closed(project string, start time.Time, d time.Duration) Session {
	return Session{Project: project, StartTime: start, Duration: &d}
}

// Open reports whether the session has no duration yet.
func (s Session) Open() bool {
	return s.Duration == nil
}

// WithDuration returns a copy of the session finalized with d. The receiver
// is not modified.
func (s Session) WithDuration(d time.Duration) Session {
	s.Duration = &d
	return s
}

// ElapsedAt returns the session's duration, substituting the time elapsed
// since the start for open sessions.
func (s Session) ElapsedAt(now time.Time) time.Duration {
	if s.Open() {
		return now.Sub(s.StartTime)
	}

	return *s.Duration
}

// Finalize closes every open session in the list against a single now
// sample, so the assigned durations do not depend on list order. It returns
// the updated list alongside the sessions it closed, and leaves the input
// untouched.
func Finalize(sessions []Session, now time.Time) (updated, closed []Session) {
	updated = make([]Session, len(sessions))

	for i, s := range sessions {
		if s.Open() {
			s = s.WithDuration(now.Sub(s.StartTime))
			closed = append(closed, s)
		}

		updated[i] = s
	}

	return updated, closed
}

// Switch closes every open session in the list and appends a fresh open
// session for the named project. Switching to the project that is already
// active still closes the running session and starts a new one: every switch
// is a discrete loggable event, never an extension of the previous record.
func Switch(sessions []Session, project string, now time.Time) []Session {
	updated, _ := Finalize(sessions, now)

	return append(updated, New(project, now))
}

// Totals sums durations per project, counting open sessions as the time
// elapsed up to now. It never modifies the list, so it is safe to call on a
// fixed cadence for display. Projects with no logged time are absent from
// the result.
func Totals(sessions []Session, now time.Time) map[string]time.Duration {
	totals := make(map[string]time.Duration)

	for _, s := range sessions {
		totals[s.Project] += s.ElapsedAt(now)
	}

	return totals
}

// CheckInvariant verifies that at most one session in the list is open and
// that it is the last element. A violation indicates a bug in a transition.
func CheckInvariant(sessions []Session) error {
	for i, s := range sessions {
		if s.Open() && i != len(sessions)-1 {
			return fmt.Errorf(
				"open session for %q at position %d of %d, want last",
				s.Project,
				i,
				len(sessions),
			)
		}
	}

	return nil
}
