//go:build windows

package autostart

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sys/windows/svc"
)

const serviceStopTimeout = 10 * time.Second

func IsWindowsService() (bool, error) {
	return svc.IsWindowsService()
}

// RunService hands control to the service manager until it asks the daemon
// to stop or the HTTP server exits on its own.
func RunService(app ServiceApp) error {
	return svc.Run(ServiceName, &serviceHandler{app: app})
}

type serviceHandler struct {
	app ServiceApp
}

func (h *serviceHandler) Execute(_ []string, r <-chan svc.ChangeRequest, status chan<- svc.Status) (bool, uint32) {
	const accepts = svc.AcceptStop | svc.AcceptShutdown
	status <- svc.Status{State: svc.StartPending}

	if err := h.app.Start(); err != nil {
		h.log().Error("service start failed", err)
		status <- svc.Status{State: svc.Stopped}
		return false, 1
	}
	status <- svc.Status{State: svc.Running, Accepts: accepts}

	for {
		select {
		case c := <-r:
			switch c.Cmd {
			case svc.Interrogate:
				status <- c.CurrentStatus
			case svc.Stop, svc.Shutdown:
				h.log().Info("service stop requested", "cmd", int(c.Cmd))
				return false, h.shutdown(status, 0)
			}
		case err := <-h.app.Errors():
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				h.log().Error("server stopped", err)
			}
			return false, h.shutdown(status, 1)
		}
	}
}

func (h *serviceHandler) shutdown(status chan<- svc.Status, code uint32) uint32 {
	status <- svc.Status{State: svc.StopPending}
	ctx, cancel := context.WithTimeout(context.Background(), serviceStopTimeout)
	defer cancel()
	h.app.Stop(ctx)
	status <- svc.Status{State: svc.Stopped}
	return code
}

func (h *serviceHandler) log() Logger {
	if l := h.app.Logger(); l != nil {
		return l
	}
	return discardLogger{}
}

type discardLogger struct{}

func (discardLogger) Info(string, ...any)         {}
func (discardLogger) Error(string, error, ...any) {}
