//go:build windows

package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"

	"photo-manifest/internal/platform/autostart"
)

func uiStartupGuard() error {
	isService, err := autostart.IsWindowsService()
	if err == nil && isService {
		return errors.New("the photo-manifest settings window cannot run as a Windows Service or in a non-interactive session. Launch photo-manifest.exe from the desktop instead")
	}
	return nil
}

func uiStartupAlert(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	_, _ = windows.MessageBox(0, windows.StringToUTF16Ptr(msg), windows.StringToUTF16Ptr("Photo Manifest"), windows.MB_ICONERROR)
	_, _ = fmt.Fprintln(os.Stderr, msg)
}
