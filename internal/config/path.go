package config

import (
	"os"
	"path/filepath"
)

const (
	// FileName is the configuration document inside the app config dir.
	FileName = "dusky_config.yaml"
	// StyleFileName is the optional style overrides document.
	StyleFileName = "dusky_style.yaml"

	appDirName = "dusky"
)

// DefaultPath resolves the configuration file location. The
// DUSKY_CONFIG environment variable wins; otherwise the file lives
// under the user config directory.
func DefaultPath() string {
	if p := os.Getenv("DUSKY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(baseDir(), FileName)
}

// DefaultStylePath resolves the style overrides file, which is allowed
// to be absent.
func DefaultStylePath() string {
	if p := os.Getenv("DUSKY_STYLE"); p != "" {
		return p
	}
	return filepath.Join(baseDir(), StyleFileName)
}

func baseDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDirName)
}
