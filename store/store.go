// Package store persists finalized sessions, the project name list, and the
// last-tracked status to plain files on disk.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/mkarlsen/timesheet/internal/session"
	"github.com/mkarlsen/timesheet/internal/timeutil"
)

// sessionHeader is the first row of the session log.
var sessionHeader = []string{"Project", "Start", "Duration"}

// Store reads and writes the session log, the project list, and the status
// file. All writes are synchronous: a call does not return until the data is
// durable.
type Store struct {
	logger          *slog.Logger
	sessionPath     string
	projectsPath    string
	statusPath      string
	defaultProjects []string
}

// Options configures a Store.
type Options struct {
	// Logger receives skipped-row warnings and write events. Defaults to
	// slog.Default.
	Logger *slog.Logger
	// SessionPath is the location of the CSV session log.
	SessionPath string
	// ProjectsPath is the location of the newline-separated project list.
	ProjectsPath string
	// StatusPath is the location of the last-tracked status file.
	StatusPath string
	// DefaultProjects is returned by LoadProjects when no project list
	// exists yet.
	DefaultProjects []string
}

// New returns a Store over the given paths. Missing files are a normal
// empty-state condition, not an error, so no paths are touched here.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		logger:          logger,
		sessionPath:     opts.SessionPath,
		projectsPath:    opts.ProjectsPath,
		statusPath:      opts.StatusPath,
		defaultProjects: opts.DefaultProjects,
	}
}

// Append adds the finalized sessions to the end of the session log in call
// order, creating the log on first write. Open sessions are skipped: a
// session without a duration is never persisted.
func (s *Store) Append(sessions []session.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	_, statErr := os.Stat(s.sessionPath)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := os.MkdirAll(filepath.Dir(s.sessionPath), 0o755); err != nil {
		return fmt.Errorf("creating session log directory: %w", err)
	}

	f, err := os.OpenFile(
		s.sessionPath,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if isNew {
		if err := w.Write(sessionHeader); err != nil {
			return fmt.Errorf("writing session log header: %w", err)
		}
	}

	if err := s.writeRows(w, sessions); err != nil {
		return err
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("appending to session log: %w", err)
	}

	return f.Sync()
}

// Overwrite replaces the session log with exactly the given sequence. The
// new content is staged in a temporary file and moved into place, so a
// reader never observes a partially written log.
func (s *Store) Overwrite(sessions []session.Session) error {
	dir := filepath.Dir(s.sessionPath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating session log directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "sessions-*.csv")
	if err != nil {
		return fmt.Errorf("staging session log: %w", err)
	}

	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)

	if err := w.Write(sessionHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session log header: %w", err)
	}

	if err := s.writeRows(w, sessions); err != nil {
		tmp.Close()
		return err
	}

	w.Flush()

	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("rewriting session log: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing session log: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing session log: %w", err)
	}

	return os.Rename(tmp.Name(), s.sessionPath)
}

func (s *Store) writeRows(w *csv.Writer, sessions []session.Session) error {
	for _, sess := range sessions {
		if sess.Open() {
			s.logger.Warn(
				"open session not persisted",
				slog.String("project", sess.Project),
			)

			continue
		}

		row := []string{
			sess.Project,
			sess.StartTime.Format(time.RFC3339),
			strconv.FormatFloat(sess.Duration.Seconds(), 'f', -1, 64),
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing session row: %w", err)
		}
	}

	return nil
}

// Load returns all persisted sessions in log order, or only those that
// started on the given day when day is non-nil. A missing log yields an
// empty result. Rows that cannot be parsed are skipped and logged rather
// than failing the whole load, so one corrupt line cannot take the entire
// history down with it. Reader faults are not rows: anything other than a
// CSV parse error fails the load.
func (s *Store) Load(day *time.Time) ([]session.Session, error) {
	f, err := os.Open(s.sessionPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var (
		sessions []session.Session
		line     int
	)

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		line++

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("reading session log: %w", err)
			}

			s.logger.Warn(
				"skipping unreadable session row",
				slog.Int("line", line),
				slog.Any("error", err),
			)

			continue
		}

		if slices.Equal(record, sessionHeader) {
			continue
		}

		sess, err := parseRow(record)
		if err != nil {
			s.logger.Warn(
				"skipping malformed session row",
				slog.Int("line", line),
				slog.Any("error", err),
			)

			continue
		}

		if day != nil && !timeutil.SameDay(sess.StartTime, *day) {
			continue
		}

		sessions = append(sessions, sess)
	}

	return sessions, nil
}

func parseRow(record []string) (session.Session, error) {
	if len(record) != len(sessionHeader) {
		return session.Session{}, fmt.Errorf(
			"got %d fields, want %d",
			len(record),
			len(sessionHeader),
		)
	}

	start, err := time.Parse(time.RFC3339, record[1])
	if err != nil {
		return session.Session{}, fmt.Errorf("parsing start time: %w", err)
	}

	if record[2] == "" {
		// an open row should never be persisted, but tolerate one
		return session.New(record[0], start), nil
	}

	secs, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return session.Session{}, fmt.Errorf("parsing duration: %w", err)
	}

	d := time.Duration(secs * float64(time.Second))

	return session.Closed(record[0], start, d), nil
}
