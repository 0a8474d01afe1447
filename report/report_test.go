package report_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mkarlsen/timesheet/internal/session"
	"github.com/mkarlsen/timesheet/report"
)

var base = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestBuildPivotsHoursByProjectAndDay(t *testing.T) {
	yesterday := base.AddDate(0, 0, -1)

	sessions := []session.Session{
		session.Closed("Project A", yesterday, 2*time.Hour),
		session.Closed("Project A", base, time.Hour),
		session.Closed("Break", base, 30*time.Minute),
	}

	s := report.Build(sessions, base.Add(3*time.Hour))

	wantDays := []string{"2024-03-03", "2024-03-04"}
	if diff := cmp.Diff(wantDays, s.Days); diff != "" {
		t.Errorf("days (-want +got):\n%s", diff)
	}

	wantProjects := []string{"Break", "Project A"}
	if diff := cmp.Diff(wantProjects, s.Projects); diff != "" {
		t.Errorf("projects (-want +got):\n%s", diff)
	}

	if got := s.Hours["Project A"]["2024-03-03"]; !approx(got, 2) {
		t.Errorf("Project A yesterday = %v, want 2", got)
	}

	if got := s.Hours["Project A"]["2024-03-04"]; !approx(got, 1) {
		t.Errorf("Project A today = %v, want 1", got)
	}

	if got := s.Total("2024-03-04"); !approx(got, 1.5) {
		t.Errorf("Total(today) = %v, want 1.5", got)
	}

	if got := s.TotalExcluding(report.BreakProject, "2024-03-04"); !approx(got, 1) {
		t.Errorf("TotalExcluding(Break, today) = %v, want 1", got)
	}
}

func TestBuildCountsOpenSessionLive(t *testing.T) {
	now := base.Add(45 * time.Minute)

	sessions := []session.Session{
		session.New("Project A", base),
	}

	s := report.Build(sessions, now)

	if got := s.Hours["Project A"]["2024-03-04"]; !approx(got, 0.75) {
		t.Errorf("live hours = %v, want 0.75", got)
	}

	if sessions[0].Duration != nil {
		t.Error("Build mutated the open session")
	}
}

func TestBuildEmpty(t *testing.T) {
	s := report.Build(nil, base)

	if !s.Empty() {
		t.Error("expected an empty summary for no sessions")
	}
}

func TestTableLayout(t *testing.T) {
	sessions := []session.Session{
		session.Closed("Project A", base, time.Hour),
		session.Closed("Break", base, 30*time.Minute),
	}

	s := report.Build(sessions, base.Add(2*time.Hour))

	rows := s.Table()

	// header + one row per project + TOTAL + TOTAL (excl breaks)
	if got, want := len(rows), 1+2+2; got != want {
		t.Fatalf("len(rows) = %d, want %d", got, want)
	}

	header := rows[0]
	if header[0] != "PROJECT" || header[1] != "Mon 04 Mar" {
		t.Errorf("header = %v", header)
	}

	last := rows[len(rows)-1]
	if last[0] != "TOTAL (excl breaks)" || last[1] != "1.00" {
		t.Errorf("breaks-excluded row = %v", last)
	}

	total := rows[len(rows)-2]
	if total[0] != "TOTAL" || total[1] != "1.50" {
		t.Errorf("total row = %v", total)
	}
}

func TestSignedAdjustmentsNetOutInSummary(t *testing.T) {
	sessions := []session.Session{
		session.Closed("Project A", base, 2*time.Hour),
		session.Closed("Project A", base.Add(2*time.Hour), -30*time.Minute),
		session.Closed("Project B", base.Add(2*time.Hour), 30*time.Minute),
	}

	s := report.Build(sessions, base.Add(3*time.Hour))

	if got := s.Hours["Project A"]["2024-03-04"]; !approx(got, 1.5) {
		t.Errorf("Project A = %v, want 1.5", got)
	}

	if got := s.Hours["Project B"]["2024-03-04"]; !approx(got, 0.5) {
		t.Errorf("Project B = %v, want 0.5", got)
	}

	if got := s.Total("2024-03-04"); !approx(got, 2) {
		t.Errorf("Total = %v, want 2: an adjustment must not change the day's total", got)
	}
}
