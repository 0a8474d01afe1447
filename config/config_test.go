package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkarlsen/timesheet/config"
)

func defaultConfig() *config.Config {
	return &config.Config{
		ReminderInterval: 15 * time.Minute,
		DefaultProjects:  []string{"Project A", "Project B", "Break"},
		TwentyFourHour:   false,
	}
}

func TestViperWriteConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	// a default config file is written when none exists
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("default config file was not written: %v", err)
	}

	assert.Equal(t, defaultConfig(), cfg)
}

func TestViperReadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	content := `settings:
  reminder_interval: 30m
  24hr_clock: true
projects:
  defaults:
    - Client X
    - Internal
`

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	want := &config.Config{
		ReminderInterval: 30 * time.Minute,
		DefaultProjects:  []string{"Client X", "Internal"},
		TwentyFourHour:   true,
	}

	assert.Equal(t, want, cfg)
}

func TestViperRejectsInvalidInterval(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	content := `settings:
  reminder_interval: never
`

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := config.New(
		config.WithViperConfig(configPath),
	)

	assert.Error(t, err)
}
