package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "mgce"

// GetConfigDir returns the platform-specific config directory.
// Unix: $XDG_CONFIG_HOME/mgce or ~/.config/mgce
// Windows: %APPDATA%\mgce
func GetConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config", "APPDATA", "Roaming")
}

// GetDataDir returns the platform-specific data directory.
// Unix: $XDG_DATA_HOME/mgce or ~/.local/share/mgce
// Windows: %LOCALAPPDATA%\mgce
func GetDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", filepath.Join(".local", "share"), "LOCALAPPDATA", "Local")
}

func userDir(xdgVar, unixFallback, winVar, winFallback string) (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv(winVar)
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", winFallback)
		}
	default:
		base = os.Getenv(xdgVar)
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, unixFallback)
		}
	}
	return filepath.Join(base, appName), nil
}

// GetConfigPath returns the path of config.toml.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetCardsDir returns the default directory for card YAML files.
func GetCardsDir() (string, error) {
	cfgDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "cards"), nil
}

// GetBrokerStorePath returns the path to the encrypted broker store.
func GetBrokerStorePath() (string, error) {
	cfgDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "brokers.enc"), nil
}

// GetLogPath returns the path of the log file.
func GetLogPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mgce.log"), nil
}

// EnsureDirs creates all required directories if they don't exist.
func EnsureDirs() error {
	dirs := []func() (string, error){GetConfigDir, GetDataDir, GetCardsDir}
	for _, fn := range dirs {
		dir, err := fn()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}
