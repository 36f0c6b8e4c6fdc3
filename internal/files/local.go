package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"photo-manifest/internal/manifest"
)

// LocalStore reads the photo folders through a go-billy filesystem rooted at the
// photo root.
type LocalStore struct {
	fs billy.Filesystem
}

func NewLocalStore(fsys billy.Filesystem) *LocalStore {
	return &LocalStore{fs: fsys}
}

func NewOSStore(root string) *LocalStore {
	return &LocalStore{fs: osfs.New(root)}
}

func NewMemoryStore() *LocalStore {
	return &LocalStore{fs: memfs.New()}
}

// Filesystem exposes the underlying filesystem, mostly for seeding test data.
func (s *LocalStore) Filesystem() billy.Filesystem {
	return s.fs
}

func (s *LocalStore) DirExists(_ context.Context, dir string) (bool, error) {
	info, err := s.stat(dir)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (s *LocalStore) ListDir(_ context.Context, dir string) ([]manifest.Entry, error) {
	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("billy: readdir %q: %w", dir, err)
	}

	entries := make([]manifest.Entry, 0, len(infos))
	for _, info := range infos {
		regular := info.Mode().IsRegular()
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := s.fs.Stat(path.Join(dir, info.Name())); err == nil {
				regular = target.Mode().IsRegular()
			}
		}
		entries = append(entries, manifest.Entry{Name: info.Name(), Regular: regular})
	}
	return entries, nil
}

func (s *LocalStore) FileExists(_ context.Context, name string) (bool, error) {
	info, err := s.stat(name)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (s *LocalStore) FileSize(_ context.Context, name string) (int64, error) {
	info, err := s.stat(name)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *LocalStore) Open(_ context.Context, name string) (*Object, error) {
	info, err := s.stat(name)
	if err != nil {
		if isNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotFound
	}

	f, err := s.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("billy: open %q: %w", name, err)
	}
	return &Object{
		Content: f,
		Name:    path.Base(name),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (s *LocalStore) stat(name string) (os.FileInfo, error) {
	info, err := s.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", name, err)
	}
	return info, nil
}

// isNotExist also treats ENOTDIR as missing: "original/a.jpg" does not exist when
// "original" is a plain file.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
