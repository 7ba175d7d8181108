package utils

import (
	"fmt"
	"os"
	"path"
)

// GetTutorConfigDir returns the path to the tutor configuration directory.
// The directory is located inside the user's configuration directory
// as <UserConfigDir>/.tutor, unless overridden by TUTOR_CONFIG_DIR.
func GetTutorConfigDir() (string, error) {
	if tutorConfigDir := os.Getenv("TUTOR_CONFIG_DIR"); tutorConfigDir != "" {
		return tutorConfigDir, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return path.Join(cfg, ".tutor"), nil
}
