// Package config manages application settings and file locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

const Version = "v0.4.1"

// Config holds all configuration settings.
type Config struct {
	// ReminderInterval is how often the tracking screen nudges the user to
	// reclassify their activity.
	ReminderInterval time.Duration
	// DefaultProjects seeds the project list before the user edits it.
	DefaultProjects []string
	// TwentyFourHour switches clock display to 24-hour format.
	TwentyFourHour bool
}

// Option is a function that modifies Config.
type Option func(*Config) error

var (
	configDir       = "timesheet"
	configFileName  = "config.yml"
	sessionFileName = "sessions.csv"
	projectFileName = "projects.txt"
	statusFileName  = "status.json"
	logFileName     = "timesheet.log"
	configFilePath  string
	sessionFilePath string
	projectFilePath string
	statusFilePath  string
	logFilePath     string
)

func Dir() string {
	return configDir
}

func ConfigFilePath() string {
	return configFilePath
}

func SessionFilePath() string {
	return sessionFilePath
}

func ProjectFilePath() string {
	return projectFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

func LogFilePath() string {
	return logFilePath
}

// InitializePaths resolves all application file locations. It must run once
// before any path accessor is used.
func InitializePaths() {
	tsEnv := strings.TrimSpace(os.Getenv("TIMESHEET_ENV"))
	if tsEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", tsEnv)
		sessionFileName = fmt.Sprintf("sessions_%s.csv", tsEnv)
		projectFileName = fmt.Sprintf("projects_%s.txt", tsEnv)
		statusFileName = fmt.Sprintf("status_%s.json", tsEnv)
		logFileName = fmt.Sprintf("timesheet_%s.log", tsEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	sessionFilePath = filepath.Join(dataDir, sessionFileName)

	projectFilePath = filepath.Join(dataDir, projectFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with the given options applied.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	return cfg, nil
}
