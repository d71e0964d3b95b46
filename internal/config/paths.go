package config

import (
	"os"
	"path/filepath"
)

// GetHome returns $SHIFTCLOCK_HOME, or ~/.shiftclock when it is not set
func GetHome() string {
	home := os.Getenv("SHIFTCLOCK_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".shiftclock"
		}
		return filepath.Join(homeDir, ".shiftclock")
	}
	return ExpandPath(home)
}

// GetDBPath returns $SHIFTCLOCK_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "state.db")
}

// GetSettingsPath returns $SHIFTCLOCK_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// GetSSHDir returns $SHIFTCLOCK_HOME/ssh, where the server host key lives
func GetSSHDir() string {
	return filepath.Join(GetHome(), "ssh")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
