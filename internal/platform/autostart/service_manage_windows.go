//go:build windows

package autostart

import (
	"errors"
	"fmt"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

const (
	servicePollInterval = 300 * time.Millisecond
	serviceStartTimeout = 30 * time.Second
	serviceDisplayName  = "Photo Manifest"
)

// InstallService registers the daemon for automatic start, or repoints an
// existing registration at exePath. It reports whether the service was created.
func InstallService(exePath string) (bool, error) {
	if exePath == "" {
		return false, errors.New("service executable path is required")
	}
	absPath, err := filepath.Abs(exePath)
	if err != nil {
		return false, err
	}

	m, err := mgr.Connect()
	if err != nil {
		return false, err
	}
	defer m.Disconnect()

	s, err := m.OpenService(ServiceName)
	if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
		s, err = m.CreateService(ServiceName, absPath, mgr.Config{
			StartType:   mgr.StartAutomatic,
			DisplayName: serviceDisplayName,
			Description: ServiceDescription,
		})
		if err != nil {
			return false, fmt.Errorf("create service: %w", err)
		}
		s.Close()
		return true, nil
	}
	if err != nil {
		return false, err
	}
	defer s.Close()

	binaryPath, err := syscall.UTF16PtrFromString(syscall.EscapeArg(absPath))
	if err != nil {
		return false, err
	}
	if err := windows.ChangeServiceConfig(
		s.Handle,
		windows.SERVICE_NO_CHANGE,
		mgr.StartAutomatic,
		windows.SERVICE_NO_CHANGE,
		binaryPath,
		nil, nil, nil, nil, nil, nil,
	); err != nil {
		return false, fmt.Errorf("update service: %w", err)
	}
	return false, nil
}

func StartService() error {
	return withService(func(s *mgr.Service) error {
		if status, err := s.Query(); err == nil {
			switch status.State {
			case svc.Running:
				return nil
			case svc.StartPending:
				return waitForServiceState(s, svc.Running, serviceStartTimeout)
			}
		}
		if err := s.Start(); err != nil && !errors.Is(err, windows.ERROR_SERVICE_ALREADY_RUNNING) {
			return err
		}
		return waitForServiceState(s, svc.Running, serviceStartTimeout)
	})
}

func StopService(timeout time.Duration) error {
	return withService(func(s *mgr.Service) error {
		return stopAndWait(s, timeout)
	})
}

// RemoveService stops the daemon if needed and deletes its registration.
func RemoveService(timeout time.Duration) error {
	return withService(func(s *mgr.Service) error {
		if err := stopAndWait(s, timeout); err != nil {
			return err
		}
		return s.Delete()
	})
}

func withService(fn func(s *mgr.Service) error) error {
	m, err := mgr.Connect()
	if err != nil {
		return err
	}
	defer m.Disconnect()

	s, err := m.OpenService(ServiceName)
	if err != nil {
		if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
			return ErrServiceNotInstalled
		}
		return err
	}
	defer s.Close()
	return fn(s)
}

func stopAndWait(s *mgr.Service, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if status, err := s.Query(); err == nil {
		switch status.State {
		case svc.Stopped:
			return nil
		case svc.StopPending:
			return waitForServiceState(s, svc.Stopped, timeout)
		}
	}
	if _, err := s.Control(svc.Stop); err != nil && !errors.Is(err, windows.ERROR_SERVICE_NOT_ACTIVE) {
		return err
	}
	return waitForServiceState(s, svc.Stopped, timeout)
}

func waitForServiceState(s *mgr.Service, want svc.State, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		status, err := s.Query()
		if err != nil {
			return err
		}
		if status.State == want {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for service state %d (current %d)", want, status.State)
		}
		time.Sleep(servicePollInterval)
	}
}
