package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/renato0307/shiftclock/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"show" help:"Show the effective settings" default:"1"`
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options"`
}

// SettingsShowCmd prints the settings in effect after env and flag overrides
type SettingsShowCmd struct{}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings
	output := map[string]any{
		"date_format":      settings.GetDateFormat(),
		"db_path":          config.GetDBPath(),
		"debug":            cli.Debug,
		"home":             config.GetHome(),
		"max_log_files":    cli.MaxLogFiles,
		"owner":            cli.Owner,
		"refresh_interval": settings.GetRefreshInterval().String(),
		"ssh_host":         settings.GetSSHHost(),
		"ssh_port":         settings.GetSSHPort(),
		"sync_interval":    settings.GetSyncInterval().String(),
		"time_format":      settings.GetTimeFormat(),
	}
	return printJSON(output)
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct{}

// Run executes the meta command
func (s *SettingsMetaCmd) Run() error {
	return printJSON(map[string]any{
		"settings_file": config.GetSettingsPath(),
		"format":        config.GetSettingsExample(),
	})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
