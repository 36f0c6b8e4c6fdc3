package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"photo-manifest/internal/config"
	"photo-manifest/internal/manifest"
)

var (
	ErrFolderNotAllowed = errors.New("folder not allowed")
	ErrInvalidPath      = errors.New("invalid path")
	ErrNotFound         = errors.New("file not found")
)

// Object is an opened image ready to be served.
type Object struct {
	Content io.ReadSeekCloser
	Name    string
	Size    int64
	ModTime time.Time
}

// Store is a manifest.Reader that can also open files for serving.
type Store interface {
	manifest.Reader
	Open(ctx context.Context, name string) (*Object, error)
}

func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageLocal, "":
		root, err := canonicalizePath(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("photo root %q: %w", cfg.Root, err)
		}
		return NewOSStore(root), nil
	case config.StorageS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ResolveImagePath validates a request for a single image and returns its
// slash separated path relative to the photo root.
func ResolveImagePath(opts manifest.Options, folder, name string) (string, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" || strings.TrimSpace(name) == "" {
		return "", ErrInvalidPath
	}
	if !opts.HasFolder(folder) {
		return "", ErrFolderNotAllowed
	}
	if err := ValidateFilename(name); err != nil {
		return "", err
	}
	if !opts.IsImage(name) {
		return "", ErrInvalidPath
	}
	return folder + "/" + name, nil
}

// ValidateFilename accepts only a bare file name: no separators, no dot
// segments.
func ValidateFilename(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidPath
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrInvalidPath
	}
	return nil
}

func canonicalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = filepath.Clean(resolved)
	}
	return abs, nil
}
