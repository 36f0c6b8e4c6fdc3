//go:build windows

package main

import (
	"photo-manifest/internal/logger"
	"photo-manifest/internal/platform/autostart"
)

func runAsService() bool {
	isService, err := autostart.IsWindowsService()
	if err != nil || !isService {
		return false
	}

	app := &serverApp{}
	if err := autostart.RunService(app); err != nil {
		logger.NewStderr().Error("windows service failed", err)
	}
	return true
}
