package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/shiftclock/internal/config"
	"github.com/renato0307/shiftclock/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"100"`
	Owner       string           `help:"Owner whose shift is tracked (overrides $SHIFTCLOCK_OWNER and settings.json)" short:"o"`

	Start    StartCmd    `cmd:"start" help:"Start a shift"`
	Pause    PauseCmd    `cmd:"pause" help:"Take a break"`
	Resume   ResumeCmd   `cmd:"resume" help:"Resume work after a break"`
	End      EndCmd      `cmd:"end" help:"End the current shift"`
	Status   StatusCmd   `cmd:"status" help:"Show the current shift (default)" default:"1"`
	History  HistoryCmd  `cmd:"history" help:"List past shifts with worked time"`
	Watch    WatchCmd    `cmd:"watch" help:"Live clock with key bindings"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the live clock over SSH"`
	Settings SettingsCmd `cmd:"settings" help:"Show settings"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// loadedSettings returns the settings passed in by main, never nil
func (c *CLI) loadedSettings() *config.Settings {
	if c.settings == nil {
		return &config.Settings{}
	}
	return c.settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// Env vars are already folded into settings by config.LoadSettings.
	settings := c.loadedSettings()

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("SHIFTCLOCK_MAX_LOG_FILES"); !hasEnv && settings.MaxLogFiles != nil {
			c.MaxLogFiles = *settings.MaxLogFiles
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("SHIFTCLOCK_DEBUG"); !hasEnv && settings.Debug != nil && *settings.Debug {
			c.Debug = true
		}
	}
	if c.Owner == "" {
		c.Owner = settings.GetOwner()
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Scripts spawned from here append to the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("SHIFTCLOCK_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("SHIFTCLOCK_DEBUG_FILE", logFilePath)
		}
	}

	logging.Logger.Debug("CLI initialized", "owner", c.Owner, "home", config.GetHome())

	// Container opens the database, so it must come after logging is initialized
	container, err := NewContainer(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
