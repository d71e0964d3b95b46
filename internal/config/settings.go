package config

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/caarlos0/env/v11"
)

// Defaults applied when neither flags, environment nor settings.json set a value
const (
	DefaultDateFormat      = "2006-01-02"
	DefaultRefreshInterval = time.Second
	DefaultSSHHost         = "localhost"
	DefaultSSHPort         = 23234
	DefaultSyncInterval    = 30 * time.Second
	DefaultTimeFormat      = "15:04"
)

// Settings represents the structure of $SHIFTCLOCK_HOME/settings.json
type Settings struct {
	DateFormat      string `json:"date_format,omitempty"`
	Debug           *bool  `json:"debug,omitempty"`
	MaxLogFiles     *int   `json:"max_log_files,omitempty"`
	Owner           string `json:"owner,omitempty"`
	RefreshInterval string `json:"refresh_interval,omitempty"`
	SSHHost         string `json:"ssh_host,omitempty"`
	SSHPort         *int   `json:"ssh_port,omitempty"`
	SyncInterval    string `json:"sync_interval,omitempty"`
	TimeFormat      string `json:"time_format,omitempty"`
}

// envOverrides holds the settings that can also come from the environment.
// Zero values mean "not set".
type envOverrides struct {
	DateFormat      string        `env:"SHIFTCLOCK_DATE_FORMAT"`
	Owner           string        `env:"SHIFTCLOCK_OWNER"`
	RefreshInterval time.Duration `env:"SHIFTCLOCK_REFRESH_INTERVAL"`
	SSHHost         string        `env:"SHIFTCLOCK_SSH_HOST"`
	SSHPort         int           `env:"SHIFTCLOCK_SSH_PORT"`
	SyncInterval    time.Duration `env:"SHIFTCLOCK_SYNC_INTERVAL"`
	TimeFormat      string        `env:"SHIFTCLOCK_TIME_FORMAT"`
}

// LoadSettings loads settings from $SHIFTCLOCK_HOME/settings.json and applies
// environment overrides on top. A missing file is not an error.
func LoadSettings() (*Settings, error) {
	settings := &Settings{}

	data, err := os.ReadFile(GetSettingsPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("invalid settings.json: %w", err)
		}
	}

	if err := settings.applyEnv(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

func (s *Settings) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if overrides.DateFormat != "" {
		s.DateFormat = overrides.DateFormat
	}
	if overrides.Owner != "" {
		s.Owner = overrides.Owner
	}
	if overrides.RefreshInterval != 0 {
		s.RefreshInterval = overrides.RefreshInterval.String()
	}
	if overrides.SSHHost != "" {
		s.SSHHost = overrides.SSHHost
	}
	if overrides.SSHPort != 0 {
		port := overrides.SSHPort
		s.SSHPort = &port
	}
	if overrides.SyncInterval != 0 {
		s.SyncInterval = overrides.SyncInterval.String()
	}
	if overrides.TimeFormat != "" {
		s.TimeFormat = overrides.TimeFormat
	}
	return nil
}

// Validate checks that duration fields parse and are positive
func (s *Settings) Validate() error {
	for name, value := range map[string]string{
		"refresh_interval": s.RefreshInterval,
		"sync_interval":    s.SyncInterval,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, value, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s %q: must be positive", name, value)
		}
	}
	return nil
}

// GetRefreshInterval returns the live clock refresh cadence
func (s *Settings) GetRefreshInterval() time.Duration {
	return parseDurationOr(s.RefreshInterval, DefaultRefreshInterval)
}

// GetSyncInterval returns how often interactive views reload from the store
func (s *Settings) GetSyncInterval() time.Duration {
	return parseDurationOr(s.SyncInterval, DefaultSyncInterval)
}

// GetDateFormat returns the Go layout used for history dates
func (s *Settings) GetDateFormat() string {
	if s.DateFormat == "" {
		return DefaultDateFormat
	}
	return s.DateFormat
}

// GetTimeFormat returns the Go layout used for history times
func (s *Settings) GetTimeFormat() string {
	if s.TimeFormat == "" {
		return DefaultTimeFormat
	}
	return s.TimeFormat
}

// GetSSHHost returns the address the SSH server binds to
func (s *Settings) GetSSHHost() string {
	if s.SSHHost == "" {
		return DefaultSSHHost
	}
	return s.SSHHost
}

// GetSSHPort returns the port the SSH server listens on
func (s *Settings) GetSSHPort() int {
	if s.SSHPort == nil {
		return DefaultSSHPort
	}
	return *s.SSHPort
}

// GetOwner returns the configured owner, falling back to the OS user name
func (s *Settings) GetOwner() string {
	if s.Owner != "" {
		return s.Owner
	}
	return DefaultOwner()
}

// DefaultOwner returns the current OS user name, or "default" when it cannot be determined
func DefaultOwner() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "default"
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
