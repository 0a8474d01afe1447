package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	keyReminderInterval = "settings.reminder_interval"
	keyTwentyFourHour   = "settings.24hr_clock"
	keyDefaultProjects  = "projects.defaults"
)

const defaultReminderInterval = 15 * time.Minute

var defaultProjects = []string{"Project A", "Project B", "Break"}

// WithViperConfig returns an Option that loads configuration from the given
// file, writing a default config first if none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

func setupViper(v *viper.Viper) {
	v.SetDefault(keyReminderInterval, defaultReminderInterval.String())
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDefaultProjects, defaultProjects)
}

func loadViperConfig(v *viper.Viper, c *Config) error {
	interval := v.GetDuration(keyReminderInterval)
	if interval <= 0 {
		return fmt.Errorf(
			"invalid reminder interval: %q",
			v.GetString(keyReminderInterval),
		)
	}

	c.ReminderInterval = interval
	c.TwentyFourHour = v.GetBool(keyTwentyFourHour)

	c.DefaultProjects = v.GetStringSlice(keyDefaultProjects)
	if len(c.DefaultProjects) == 0 {
		c.DefaultProjects = defaultProjects
	}

	return nil
}
