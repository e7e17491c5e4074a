package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the converter data directory.
// - Windows: %APPDATA%\mpgconverter
// - Other OS: ~/.mpgconverter
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "mpgconverter")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".mpgconverter"
	}
	return filepath.Join(home, ".mpgconverter")
}

// DBPath returns the path to the SQLite database file.
func DBPath() string {
	return filepath.Join(DataDir(), "mpgconverter.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
