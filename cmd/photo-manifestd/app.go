package main

import (
	"context"
	"errors"
	"net/http"

	"photo-manifest/internal/api"
	"photo-manifest/internal/config"
	"photo-manifest/internal/files"
	"photo-manifest/internal/logger"
	"photo-manifest/internal/platform/autostart"
)

type serverApp struct {
	cfg    config.Config
	logSvc logger.LoggerService
	srv    *http.Server
	errCh  chan error
}

// loadConfig reads the saved config, reporting a missing file with a hint.
func loadConfig(log logger.LoggerService) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			log.Error("config not found; run photo-manifest to create it", nil)
			return cfg, err
		}
		log.Error("failed to load config", err)
		return cfg, err
	}
	return cfg, nil
}

func newServer(ctx context.Context, cfg config.Config, logSvc logger.LoggerService) (*http.Server, error) {
	store, err := files.New(ctx, cfg.Storage)
	if err != nil {
		logSvc.Error("photo storage unavailable", err, "backend", cfg.Storage.Backend)
		return nil, err
	}

	srv, err := api.NewServer(cfg, api.ServerDeps{
		Store:  store,
		Logger: logSvc,
	})
	if err != nil {
		logSvc.Error("config validation error", err)
		return nil, err
	}
	return srv, nil
}

func (a *serverApp) Start() error {
	bootstrapLog := logger.NewStderr()

	cfg, err := loadConfig(bootstrapLog)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logSvc, err := logger.New(cfg)
	if err != nil {
		bootstrapLog.Error("logger init failed; using stderr", err)
		logSvc = bootstrapLog
	}
	a.logSvc = logSvc

	srv, err := newServer(context.Background(), cfg, logSvc)
	if err != nil {
		a.Stop(context.Background())
		return err
	}
	a.srv = srv

	a.errCh = make(chan error, 1)
	go func() {
		a.errCh <- srv.ListenAndServe()
	}()

	logSvc.Info("photo-manifestd listening", "addr", srv.Addr, "manifest", cfg.ManifestPath)
	return nil
}

func (a *serverApp) Stop(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.srv != nil {
		_ = a.srv.Shutdown(ctx)
	}
	if a.logSvc != nil {
		_ = a.logSvc.Close()
	}
}

func (a *serverApp) Errors() <-chan error {
	return a.errCh
}

func (a *serverApp) Logger() autostart.Logger {
	if a.logSvc == nil {
		return nil
	}
	return a.logSvc
}
