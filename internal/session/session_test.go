package session_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mkarlsen/timesheet/internal/session"
)

var base = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)

func closedAfter(project string, offset, d time.Duration) session.Session {
	return session.Closed(project, base.Add(offset), d)
}

func TestSwitchClosesOpenSessionAndAppends(t *testing.T) {
	now := base.Add(2 * time.Hour)

	sessions := []session.Session{
		closedAfter("Project A", 0, time.Hour),
		session.New("Project B", base.Add(time.Hour)),
	}

	got := session.Switch(sessions, "Break", now)

	if err := session.CheckInvariant(got); err != nil {
		t.Fatalf("invariant violated after switch: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}

	last := got[len(got)-1]
	if !last.Open() || last.Project != "Break" || !last.StartTime.Equal(now) {
		t.Errorf("last session = %+v, want open Break starting at %v", last, now)
	}

	closed := got[1]
	if closed.Open() {
		t.Fatal("previous session was not closed by the switch")
	}

	if want := time.Hour; *closed.Duration != want {
		t.Errorf("closed duration = %v, want %v", *closed.Duration, want)
	}
}

func TestSwitchToActiveProjectStartsFreshSession(t *testing.T) {
	now := base.Add(30 * time.Minute)

	sessions := []session.Session{session.New("Project A", base)}

	got := session.Switch(sessions, "Project A", now)

	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2: a switch never extends a session", len(got))
	}

	if got[0].Open() {
		t.Error("original session should be closed")
	}

	if !got[1].Open() {
		t.Error("new session should be open")
	}
}

func TestSwitchClosesEveryOpenSession(t *testing.T) {
	// a list that violates the single-open invariant is still cleaned up
	sessions := []session.Session{
		session.New("Project A", base),
		closedAfter("Break", time.Hour, 10*time.Minute),
		session.New("Project B", base.Add(time.Hour)),
	}

	got := session.Switch(sessions, "Project C", base.Add(2*time.Hour))

	if err := session.CheckInvariant(got); err != nil {
		t.Fatalf("invariant violated after defensive switch: %v", err)
	}

	for i, s := range got[:len(got)-1] {
		if s.Open() {
			t.Errorf("session %d still open after switch", i)
		}
	}
}

func TestSwitchOnEmptyListAppendsOpenSession(t *testing.T) {
	got := session.Switch(nil, "Project A", base)

	want := []session.Session{session.New("Project A", base)}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected sessions (-want +got):\n%s", diff)
	}
}

func TestFinalizeReturnsExactlyTheClosedSessions(t *testing.T) {
	now := base.Add(90 * time.Minute)

	sessions := []session.Session{
		closedAfter("Project A", 0, time.Hour),
		session.New("Project B", base.Add(time.Hour)),
	}

	updated, closed := session.Finalize(sessions, now)

	want := []session.Session{
		session.Closed("Project B", base.Add(time.Hour), 30*time.Minute),
	}

	if diff := cmp.Diff(want, closed); diff != "" {
		t.Errorf("unexpected closed set (-want +got):\n%s", diff)
	}

	if sessions[1].Duration != nil {
		t.Error("Finalize mutated its input")
	}

	// a second pass has nothing left to close
	again, closed := session.Finalize(updated, now.Add(time.Minute))
	if len(closed) != 0 {
		t.Errorf("second Finalize closed %d sessions, want 0", len(closed))
	}

	if diff := cmp.Diff(updated, again); diff != "" {
		t.Errorf("second Finalize changed the list (-want +got):\n%s", diff)
	}
}

func TestFinalizeAssignsElapsedDuration(t *testing.T) {
	now := base.Add(42 * time.Second)

	_, closed := session.Finalize(
		[]session.Session{session.New("Project A", base)},
		now,
	)

	if len(closed) != 1 {
		t.Fatalf("closed %d sessions, want 1", len(closed))
	}

	if got, want := *closed[0].Duration, 42*time.Second; got != want {
		t.Errorf("duration = %v, want %v", got, want)
	}

	if *closed[0].Duration < 0 {
		t.Error("finalized duration must not be negative")
	}
}

func TestTotalsSumsPerProject(t *testing.T) {
	now := base.Add(3 * time.Hour)

	tests := []struct {
		name     string
		sessions []session.Session
		want     map[string]time.Duration
	}{
		{
			name: "single finalized session",
			sessions: []session.Session{
				closedAfter("Project A", 0, time.Hour),
			},
			want: map[string]time.Duration{"Project A": time.Hour},
		},
		{
			name: "open session counted live",
			sessions: []session.Session{
				closedAfter("Project A", 0, time.Hour),
				session.New("Project A", base.Add(2*time.Hour)),
			},
			want: map[string]time.Duration{"Project A": 2 * time.Hour},
		},
		{
			name: "signed adjustment pair nets out",
			sessions: []session.Session{
				closedAfter("Project A", 0, 2*time.Hour),
				closedAfter("Project A", time.Hour, -30*time.Minute),
				closedAfter("Break", time.Hour, 30*time.Minute),
			},
			want: map[string]time.Duration{
				"Project A": 90 * time.Minute,
				"Break":     30 * time.Minute,
			},
		},
		{
			name:     "empty list yields empty mapping",
			sessions: nil,
			want:     map[string]time.Duration{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := session.Totals(tt.sessions, now)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected totals (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTotalsDoesNotMutate(t *testing.T) {
	sessions := []session.Session{
		closedAfter("Project A", 0, time.Hour),
		session.New("Project B", base.Add(time.Hour)),
	}

	first := session.Totals(sessions, base.Add(2*time.Hour))
	second := session.Totals(sessions, base.Add(2*time.Hour+5*time.Second))

	if sessions[1].Duration != nil {
		t.Fatal("Totals mutated an open session")
	}

	if second["Project B"] < first["Project B"] {
		t.Error("open session total decreased between calls")
	}

	if first["Project A"] != second["Project A"] {
		t.Error("finalized totals changed between calls")
	}
}

func TestCheckInvariant(t *testing.T) {
	tests := []struct {
		name     string
		sessions []session.Session
		wantErr  bool
	}{
		{
			name:     "empty list",
			sessions: nil,
		},
		{
			name: "open session last",
			sessions: []session.Session{
				closedAfter("Project A", 0, time.Hour),
				session.New("Project B", base.Add(time.Hour)),
			},
		},
		{
			name: "open session not last",
			sessions: []session.Session{
				session.New("Project B", base),
				closedAfter("Project A", time.Hour, time.Hour),
			},
			wantErr: true,
		},
		{
			name: "two open sessions",
			sessions: []session.Session{
				session.New("Project A", base),
				session.New("Project B", base.Add(time.Hour)),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := session.CheckInvariant(tt.sessions)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckInvariant() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
