package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Status records the project that was being tracked when the process last
// wrote it. It exists for display only: elapsed time from an interrupted
// session is never recovered, so reading a status back never resumes a
// session.
type Status struct {
	Project    string    `json:"project"`
	LastSwitch time.Time `json:"last_switch"`
}

// ReadStatus returns the last written status, or nil if none exists.
func (s *Store) ReadStatus() (*Status, error) {
	b, err := os.ReadFile(s.statusPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading status file: %w", err)
	}

	var status Status

	if err := json.Unmarshal(b, &status); err != nil {
		return nil, fmt.Errorf("decoding status file: %w", err)
	}

	return &status, nil
}

// WriteStatus replaces the status file.
func (s *Store) WriteStatus(status Status) error {
	if err := os.MkdirAll(filepath.Dir(s.statusPath), 0o755); err != nil {
		return fmt.Errorf("creating status directory: %w", err)
	}

	b, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}

	if err := os.WriteFile(s.statusPath, b, 0o644); err != nil {
		return fmt.Errorf("writing status file: %w", err)
	}

	return nil
}

// ClearStatus removes the status file. A missing file is not an error.
func (s *Store) ClearStatus() error {
	err := os.Remove(s.statusPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing status file: %w", err)
	}

	return nil
}
