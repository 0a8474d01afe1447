package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadProjects reads the project list in file order, trimming whitespace and
// skipping blank lines. When no list exists yet, the configured default list
// is returned instead; the result is never empty and a missing file is not
// an error.
func (s *Store) LoadProjects() ([]string, error) {
	f, err := os.Open(s.projectsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return append([]string(nil), s.defaultProjects...), nil
		}

		return nil, fmt.Errorf("opening project list: %w", err)
	}
	defer f.Close()

	var projects []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}

		projects = append(projects, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading project list: %w", err)
	}

	if len(projects) == 0 {
		return append([]string(nil), s.defaultProjects...), nil
	}

	return projects, nil
}

// SaveProjects replaces the project list with the given names, one per line,
// preserving order.
func (s *Store) SaveProjects(projects []string) error {
	if err := os.MkdirAll(filepath.Dir(s.projectsPath), 0o755); err != nil {
		return fmt.Errorf("creating project list directory: %w", err)
	}

	var b strings.Builder

	for _, name := range projects {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		b.WriteString(name)
		b.WriteString("\n")
	}

	if err := os.WriteFile(s.projectsPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing project list: %w", err)
	}

	return nil
}
