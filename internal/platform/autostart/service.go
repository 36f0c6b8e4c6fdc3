package autostart

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
)

const (
	// ServiceName is the Windows service the daemon registers as.
	ServiceName        = "photo-manifestd"
	ServiceDescription = "Photo manifest HTTP daemon"
)

var (
	ErrServiceUnsupported  = errors.New("windows service control is not supported on this OS")
	ErrServiceNotInstalled = errors.New("service is not installed")
)

type ServiceApp interface {
	Start() error
	Stop(ctx context.Context)
	Errors() <-chan error
	Logger() Logger
}

type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, err error, args ...any)
}

// DaemonPath returns the daemon executable installed next to the CLI.
func DaemonPath(cliExe string) string {
	name := ServiceName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(cliExe), name)
}
