package api

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"photo-manifest/internal/api/handlers"
	"photo-manifest/internal/api/middleware"
	"photo-manifest/internal/api/utils"
	"photo-manifest/internal/config"
	"photo-manifest/internal/files"
	"photo-manifest/internal/logger"
)

type ServerDeps struct {
	Store  files.Store
	Logger logger.LoggerService
}

func NewServer(cfg config.Config, deps ServerDeps) (*http.Server, error) {
	addr := strings.TrimSpace(cfg.APIListen)
	if err := config.ValidateListenAddr(addr); err != nil {
		return nil, err
	}

	handler, err := NewHandler(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}

// NewHandler wires the routes and middleware without binding a listener.
func NewHandler(cfg config.Config, deps ServerDeps) (http.Handler, error) {
	if deps.Store == nil {
		return nil, errors.New("photo store is required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewStderr()
	}

	opts := cfg.ManifestOptions()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	manifestPath := strings.TrimSpace(cfg.ManifestPath)
	if manifestPath == "" {
		manifestPath = "/index.json"
	}
	if err := config.ValidateManifestPath(manifestPath); err != nil {
		return nil, err
	}
	prefix := routePrefix(manifestPath)

	base := handlers.BaseURLResolver{
		PublicBaseURL:     cfg.PublicBaseURL,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	}

	manifestHandler := handlers.NewManifestHandler(deps.Store, opts, base, log)

	routes := []route{
		{"GET /api/health", handlers.NewHealthHandler(deps.Store, opts)},
		{"GET /api/folders", handlers.NewFoldersHandler(deps.Store, opts, log)},
		{"GET /api/photos/{filename}", handlers.NewPhotoInfoHandler(deps.Store, opts, log)},
		{"/api/", http.HandlerFunc(notFoundHandler)},
		{"GET " + prefix + "{$}", manifestHandler},
	}
	if manifestPath != prefix {
		routes = append(routes, route{"GET " + manifestPath, manifestHandler})
	}
	for _, folder := range opts.Folders {
		routes = append(routes, route{"GET " + prefix + folder + "/{filename}", handlers.NewImageHandler(deps.Store, opts, folder, log)})
	}
	routes = append(routes, route{"/", http.HandlerFunc(notFoundHandler)})

	mux := http.NewServeMux()
	for _, rt := range routes {
		if err := register(mux, rt); err != nil {
			return nil, err
		}
	}

	var h http.Handler = mux
	h = middleware.Logging(log, h)
	h = middleware.RequestID(h)
	h = middleware.CORS(cfg.AllowOrigin, h)
	return h, nil
}

type route struct {
	pattern string
	handler http.Handler
}

// register reports a pattern the mux rejects (it panics on those) or one that
// conflicts with an earlier route as an error.
func register(mux *http.ServeMux, rt route) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("route %q: %v", rt.pattern, r)
		}
	}()
	mux.Handle(rt.pattern, rt.handler)
	return nil
}

// routePrefix is the directory the manifest is served from; image routes and
// the derived base URL share it.
func routePrefix(manifestPath string) string {
	if strings.HasSuffix(manifestPath, "/") {
		return manifestPath
	}
	return strings.TrimRight(path.Dir(manifestPath), "/") + "/"
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusNotFound, "Not found", "NOT_FOUND", nil)
}
