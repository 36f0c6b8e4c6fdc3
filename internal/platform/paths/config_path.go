package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const AppName = "photo-manifest"

// ConfigEnv overrides the machine-wide config location.
const ConfigEnv = "PHOTO_MANIFEST_CONFIG"

func ConfigFilePath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(ConfigEnv)); p != "" {
		return p, nil
	}
	dir, err := appDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func appDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, AppName), nil
	case "linux":
		return filepath.Join("/etc", AppName), nil
	default:
		return "", errors.New("unsupported OS for machine-wide config")
	}
}
