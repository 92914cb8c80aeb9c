// Package config turns viper settings into validated tally configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands $VARS in path and then a leading ~ to the home directory.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// userConfigFile returns name inside ~/.config/tally, or "" without a home directory.
func userConfigFile(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tally", name)
}
