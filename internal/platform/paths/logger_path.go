package paths

import "path/filepath"

// LoggerFilePath places the daemon log next to the config file.
func LoggerFilePath() (string, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), "server.log"), nil
}
