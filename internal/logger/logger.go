package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"photo-manifest/internal/config"
	"photo-manifest/internal/platform/paths"
)

type LoggerService interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, err error, args ...any)
	Success(msg string, args ...any)
	Close() error
}

type service struct {
	logger *slog.Logger
	file   *os.File
}

// New logs to the machine-wide log file. Debug mode lowers the level and mirrors
// everything to stderr.
func New(cfg config.Config) (LoggerService, error) {
	logPath, err := paths.LoggerFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	var out io.Writer = f
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, f)
	}

	return &service{
		logger: slog.New(newHandler(out, cfg.LogFormat, cfg.Debug, true)),
		file:   f,
	}, nil
}

func NewStderr() LoggerService {
	return &service{
		logger: slog.New(newHandler(os.Stderr, config.LogFormatText, false, false)),
	}
}

// NewWriter logs to w without touching the filesystem.
func NewWriter(w io.Writer, format config.LogFormat, debug bool) LoggerService {
	return &service{
		logger: slog.New(newHandler(w, format, debug, true)),
	}
}

func newHandler(w io.Writer, format config.LogFormat, debug, noColor bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if format == config.LogFormatJSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	})
}

func (s *service) Debug(msg string, args ...any) {
	s.write(slog.LevelDebug, msg, args...)
}

func (s *service) Info(msg string, args ...any) {
	s.write(slog.LevelInfo, msg, args...)
}

func (s *service) Error(msg string, err error, args ...any) {
	msg = strings.TrimSpace(msg)
	if err != nil {
		if msg == "" {
			msg = err.Error()
		} else {
			args = append(args, tint.Err(err))
		}
	}
	s.write(slog.LevelError, msg, args...)
}

func (s *service) Warn(msg string, args ...any) {
	s.write(slog.LevelWarn, msg, args...)
}

func (s *service) Success(msg string, args ...any) {
	s.write(slog.LevelInfo, msg, append(args, slog.Bool("ok", true))...)
}

func (s *service) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

func (s *service) write(level slog.Level, msg string, args ...any) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	s.logger.Log(context.Background(), level, msg, args...)
}
