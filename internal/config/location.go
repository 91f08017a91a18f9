package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "RESUMEBT_CONFIG"

// GetConfigPath returns $RESUMEBT_CONFIG if set, otherwise
// ~/.resumebt/config.
func GetConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".resumebt", "config"), nil
}
