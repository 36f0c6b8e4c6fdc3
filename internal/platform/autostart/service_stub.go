//go:build !windows

package autostart

func IsWindowsService() (bool, error) {
	return false, nil
}

func RunService(ServiceApp) error {
	return ErrServiceUnsupported
}
