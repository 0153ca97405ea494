package config

import (
	"os"
	"path/filepath"
)

const appDir = "eduwise"

func xdgHome(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome returns the XDG config home or ~/.config.
func XDGConfigHome() string { return xdgHome("XDG_CONFIG_HOME", ".config") }

// XDGDataHome returns the XDG data home or ~/.local/share.
func XDGDataHome() string { return xdgHome("XDG_DATA_HOME", ".local", "share") }

// XDGStateHome returns the XDG state home or ~/.local/state.
func XDGStateHome() string { return xdgHome("XDG_STATE_HOME", ".local", "state") }

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appDir, "eduwise.db")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appDir, "eduwise.log")
}
