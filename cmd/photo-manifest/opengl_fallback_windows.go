//go:build windows

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

var openGLFallbackOnce sync.Once

func handleOpenGLFailure() {
	openGLFallbackOnce.Do(func() {
		msg := "OpenGL is not available on this machine (likely Microsoft Hyper-V Video or Basic Display Adapter).\n" +
			"The settings window cannot start. A console window will open with the current config; " +
			"use \"photo-manifest config set\" to change it."
		_, _ = windows.MessageBox(0, windows.StringToUTF16Ptr(msg), windows.StringToUTF16Ptr("Photo Manifest"), windows.MB_ICONERROR)
		_ = launchConsole()
		os.Exit(1)
	})
}

func launchConsole() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	exe = filepath.Clean(exe)
	cmdline := fmt.Sprintf("\"%s\" config show", exe)
	cmd := exec.Command("cmd.exe", "/k", cmdline)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_CONSOLE,
	}
	return cmd.Start()
}
