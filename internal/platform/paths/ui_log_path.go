package paths

import "path/filepath"

func UILogFilePath() (string, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), "ui.log"), nil
}
