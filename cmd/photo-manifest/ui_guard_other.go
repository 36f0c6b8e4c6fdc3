//go:build !windows

package main

import (
	"errors"
	"os"
	"runtime"
)

func uiStartupGuard() error {
	if runtime.GOOS != "linux" {
		return nil
	}
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return errors.New("no display available for the settings window; use \"photo-manifest config\" instead")
	}
	return nil
}

func uiStartupAlert(error) {}
