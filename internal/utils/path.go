package utils

import (
	"fmt"
	"os"
	"path"
)

// GetConfigDir returns the path to the lockbot configuration directory.
// The directory is located inside the user's configuration directory
// as <UserConfigDir>/lockbot, unless overridden by LOCKBOT_CONFIG_HOME.
func GetConfigDir() (string, error) {
	if home := os.Getenv("LOCKBOT_CONFIG_HOME"); home != "" {
		return home, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return path.Join(cfg, "lockbot"), nil
}
