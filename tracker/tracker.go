// Package tracker owns the in-memory session state for the running process
// and coordinates every transition with the record store.
package tracker

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/mkarlsen/timesheet/internal/session"
	"github.com/mkarlsen/timesheet/internal/timeutil"
	"github.com/mkarlsen/timesheet/store"
)

// Tracker holds today's sessions and routes all mutation through its
// methods. In-memory state is committed only after the corresponding durable
// write succeeds, so memory and disk cannot silently diverge on a write
// failure.
type Tracker struct {
	store    *store.Store
	logger   *slog.Logger
	now      func() time.Time
	current  string
	sessions []session.Session
}

// Option modifies a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New seeds a Tracker with today's finalized records. Open rows cannot occur
// on disk since the store never persists them, but any that do appear are
// excluded: an interrupted session is never resumed across a restart, its
// unsaved time is lost by design. The last-tracked project is restored from
// the status file for display only.
func New(st *store.Store, logger *slog.Logger, opts ...Option) (*Tracker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tracker{
		store:  st,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	today := t.now()

	records, err := st.Load(&today)
	if err != nil {
		return nil, fmt.Errorf("seeding today's sessions: %w", err)
	}

	for _, s := range records {
		if s.Open() {
			continue
		}

		t.sessions = append(t.sessions, s)
	}

	status, err := st.ReadStatus()
	if err != nil {
		logger.Warn("discarding unreadable status", slog.Any("error", err))
	} else if status != nil {
		t.current = status.Project
	}

	return t, nil
}

// CurrentProject returns the name of the project most recently switched to.
// It is informational: only an open session makes a project live.
func (t *Tracker) CurrentProject() string {
	return t.current
}

// Active reports whether a session is currently accumulating time.
func (t *Tracker) Active() bool {
	n := len(t.sessions)

	return n > 0 && t.sessions[n-1].Open()
}

// Sessions returns a copy of today's in-memory session list.
func (t *Tracker) Sessions() []session.Session {
	return append([]session.Session(nil), t.sessions...)
}

// Totals returns live per-project totals for today, counting the open
// session up to the current instant.
func (t *Tracker) Totals() map[string]time.Duration {
	return session.Totals(t.sessions, t.now())
}

// SwitchProject closes any open session, persists it, and starts tracking
// the named project. Selecting the project that is already active logs a new
// record rather than extending the old one.
func (t *Tracker) SwitchProject(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyProject
	}

	now := t.now()

	updated, closed := session.Finalize(t.sessions, now)

	if err := t.store.Append(closed); err != nil {
		return fmt.Errorf("persisting closed sessions: %w", err)
	}

	t.sessions = append(updated, session.New(name, now))
	t.current = name

	if err := session.CheckInvariant(t.sessions); err != nil {
		return fmt.Errorf("after switch: %w", err)
	}

	err := t.store.WriteStatus(store.Status{Project: name, LastSwitch: now})
	if err != nil {
		t.logger.Warn("writing status failed", slog.Any("error", err))
	}

	t.logger.Info(
		"switched project",
		slog.String("project", name),
		slog.Int("closed", len(closed)),
	)

	return nil
}

// EndWorkday closes and persists any open session and clears the tracking
// status. It returns the sessions it closed; calling it again with nothing
// open is a no-op.
func (t *Tracker) EndWorkday() ([]session.Session, error) {
	now := t.now()

	updated, closed := session.Finalize(t.sessions, now)

	if err := t.store.Append(closed); err != nil {
		return nil, fmt.Errorf("persisting closed sessions: %w", err)
	}

	t.sessions = updated

	if err := t.store.ClearStatus(); err != nil {
		t.logger.Warn("clearing status failed", slog.Any("error", err))
	}

	for _, s := range closed {
		t.logger.Info(
			"session finalized",
			slog.String("project", s.Project),
			slog.Duration("duration", *s.Duration),
		)
	}

	return closed, nil
}

// Adjust moves already-logged time from one project to another for the
// current day without rewriting history. The move is recorded as a pair of
// compensating records written in one append: a negative duration for the
// source and a matching positive one for the destination.
//
// Validation happens against live totals before anything is touched, so a
// rejected adjustment leaves both memory and disk unchanged. If a session
// was open it is settled first and a fresh session for the same project is
// started afterwards, keeping the user's timer running across the edit.
func (t *Tracker) Adjust(from, to string, hours float64) error {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return ErrInvalidHours
	}

	if from == to {
		return ErrSameProject
	}

	now := t.now()
	amount := time.Duration(hours * float64(time.Hour))

	available := session.Totals(t.sessions, now)[from]
	if amount > available {
		return &InsufficientTimeError{Project: from, Available: available}
	}

	interrupted := ""
	if t.Active() {
		interrupted = t.sessions[len(t.sessions)-1].Project
	}

	// settle the open session so the move applies to fully-written totals
	updated, closed := session.Finalize(t.sessions, now)

	if err := t.store.Append(closed); err != nil {
		return fmt.Errorf("settling open session: %w", err)
	}

	t.sessions = updated

	pair := []session.Session{
		session.Closed(from, now, -amount),
		session.Closed(to, now, amount),
	}

	// one append for both rows; writing only half would corrupt totals
	if err := t.store.Append(pair); err != nil {
		return fmt.Errorf("persisting adjustment: %w", err)
	}

	t.sessions = append(t.sessions, pair...)

	t.logger.Info(
		"adjustment applied",
		slog.String("from", from),
		slog.String("to", to),
		slog.Float64("hours", hours),
	)

	if interrupted != "" {
		return t.SwitchProject(interrupted)
	}

	return nil
}

// Prune discards every record from before today, keeping today's rows. The
// retained set is written back in one overwrite so the on-disk log reflects
// exactly what was kept. A live open session survives the prune.
func (t *Tracker) Prune() (removed int, err error) {
	now := t.now()

	all, err := t.store.Load(nil)
	if err != nil {
		return 0, fmt.Errorf("loading session log: %w", err)
	}

	keep := make([]session.Session, 0, len(all))

	for _, s := range all {
		if timeutil.SameDay(s.StartTime, now) {
			keep = append(keep, s)
		}
	}

	if err := t.store.Overwrite(keep); err != nil {
		return 0, fmt.Errorf("rewriting session log: %w", err)
	}

	var open *session.Session
	if t.Active() {
		last := t.sessions[len(t.sessions)-1]
		open = &last
	}

	mem := make([]session.Session, 0, len(keep))

	for _, s := range keep {
		// a stray open row on disk must not land ahead of the live session
		if s.Open() {
			continue
		}

		mem = append(mem, s)
	}

	t.sessions = mem
	if open != nil {
		t.sessions = append(t.sessions, *open)
	}

	removed = len(all) - len(keep)

	t.logger.Info(
		"deleted past entries",
		slog.Int("removed", removed),
		slog.Int("kept", len(keep)),
	)

	return removed, nil
}
