package main

import (
	"io"
	"os"
	"path/filepath"

	"photo-manifest/internal/config"
	"photo-manifest/internal/logger"
	"photo-manifest/internal/platform/paths"
)

// uiLogger records what the desktop tool did; it never fails, falling back to
// discarding output when the log file cannot be opened.
type uiLogger struct {
	logger.LoggerService
	file *os.File
}

func newUILogger() *uiLogger {
	discard := &uiLogger{LoggerService: logger.NewWriter(io.Discard, config.LogFormatText, false)}

	logPath, err := paths.UILogFilePath()
	if err != nil || logPath == "" {
		return discard
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return discard
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return discard
	}

	return &uiLogger{
		LoggerService: logger.NewWriter(f, config.LogFormatText, true),
		file:          f,
	}
}

func (l *uiLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
