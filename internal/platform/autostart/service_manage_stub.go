//go:build !windows

package autostart

import "time"

func InstallService(string) (bool, error) {
	return false, ErrServiceUnsupported
}

func StartService() error {
	return ErrServiceUnsupported
}

func StopService(time.Duration) error {
	return ErrServiceUnsupported
}

func RemoveService(time.Duration) error {
	return ErrServiceUnsupported
}
