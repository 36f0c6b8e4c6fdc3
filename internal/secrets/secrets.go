package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"photo-manifest/internal/platform/paths"
)

var ErrNotFound = errors.New("secret not found")

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = unsafeKeyChars.ReplaceAllString(key, "_")
	if key == "" {
		return "empty"
	}
	return key
}

func secretFilePath(key string) (string, error) {
	cfgPath, err := paths.ConfigFilePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), "secrets", sanitizeKey(key)+".bin"), nil
}

func Set(key string, value []byte) error {
	p, err := secretFilePath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}

	sealed, err := seal(value)
	if err != nil {
		return err
	}

	return os.WriteFile(p, sealed, 0o600)
}

func Get(key string) ([]byte, error) {
	p, err := secretFilePath(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unseal(b)
}

func Delete(key string) error {
	p, err := secretFilePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
