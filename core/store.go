package core

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetRinthLocalStore returns the per-user data directory, searched for config
// files alongside the home directory.
func GetRinthLocalStore() (string, error) {
	if runtime.GOOS == "linux" {
		// Prefer $XDG_DATA_HOME over $XDG_CACHE_HOME
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome != "" {
			return filepath.Join(dataHome, "rinth"), nil
		}
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "rinth"), nil
}
