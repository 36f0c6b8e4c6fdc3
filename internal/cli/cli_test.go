package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-manifest/internal/config"
	"photo-manifest/internal/files"
	"photo-manifest/internal/platform/autostart"
	"photo-manifest/internal/platform/paths"
	"photo-manifest/internal/secrets"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(paths.ConfigEnv, p)
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(nil)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePhoto(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestConfigSetAndShow(t *testing.T) {
	cfgPath := isolateConfig(t)

	out, err := run(t, "config", "set",
		"--api-listen", "0.0.0.0:9000",
		"--root", "/srv/photos",
		"--folder", "thumbnail", "--folder", "original",
		"--debug",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Config saved.")

	cfg, err := config.LoadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.APIListen)
	assert.Equal(t, "/srv/photos", cfg.Storage.Root)
	assert.Equal(t, []string{"thumbnail", "original"}, cfg.Folders)
	assert.True(t, cfg.Debug)

	out, err = run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "API Listen: 0.0.0.0:9000")
	assert.Contains(t, out, "Folders: thumbnail, original")
	assert.Contains(t, out, "Size Priority: original, thumbnail")
	assert.Contains(t, out, "Root: /srv/photos")
}

func TestConfigSetRejectsInvalid(t *testing.T) {
	cfgPath := isolateConfig(t)

	_, err := run(t, "config", "set", "--api-listen", "no-port")
	require.Error(t, err)

	_, err = run(t, "config", "set", "--backend", "ftp")
	require.Error(t, err)

	_, err = run(t, "config", "set", "--folder", "thumb{1}", "--folder", "original")
	require.Error(t, err)

	_, err = run(t, "config", "set", "--manifest-path", "/{x}/index.json")
	require.Error(t, err)

	_, statErr := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(statErr), "invalid values must not be saved")
}

func TestConfigSetNoChanges(t *testing.T) {
	isolateConfig(t)

	out, err := run(t, "config", "set")
	require.NoError(t, err)
	assert.Contains(t, out, "No changes requested.")
}

func TestConfigSetStoresSecret(t *testing.T) {
	cfgPath := isolateConfig(t)

	out, err := run(t, "config", "set", "--s3-secret-key", "s3cr3t")
	require.NoError(t, err)
	assert.Contains(t, out, "S3 secret key saved.")

	got, err := secrets.Get(files.S3SecretKey)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", string(got))

	_, statErr := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(statErr))

	out, err = run(t, "config", "set", "--s3-secret-key", "")
	require.NoError(t, err)
	assert.Contains(t, out, "S3 secret key removed.")
	_, err = secrets.Get(files.S3SecretKey)
	assert.ErrorIs(t, err, secrets.ErrNotFound)
}

func TestScan(t *testing.T) {
	isolateConfig(t)
	root := t.TempDir()
	writePhoto(t, root, "thumbnail/b.jpg", "bb")
	writePhoto(t, root, "thumbnail/a.JPG", "a")
	writePhoto(t, root, "original/a.JPG", "aaaa")
	writePhoto(t, root, "thumbnail/notes.txt", "x")

	out, err := run(t, "scan", "--root", root, "--base-url", "https://photos.example.com/album")
	require.NoError(t, err)

	var body struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		BaseURL string           `json:"base_url"`
		Photos  []map[string]any `json:"photos"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body), out)
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "https://photos.example.com/album/", body.BaseURL)
	require.Len(t, body.Photos, 2)
	assert.Equal(t, "a.JPG", body.Photos[0]["filename"])
	assert.Equal(t, "https://photos.example.com/album/original/a.JPG", body.Photos[0]["original_url"])
	assert.EqualValues(t, 4, body.Photos[0]["size"])
}

func TestScanStrict(t *testing.T) {
	isolateConfig(t)
	root := t.TempDir()

	out, err := run(t, "scan", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, `"success": false`)

	out, err = run(t, "scan", "--root", root, "--strict")
	require.Error(t, err)
	assert.Contains(t, out, `"success": false`)
}

func TestScanBaseURL(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "http://127.0.0.1:8080/", scanBaseURL(cfg, ""))

	cfg.ManifestPath = "/gallery/index.json"
	assert.Equal(t, "http://127.0.0.1:8080/gallery/", scanBaseURL(cfg, ""))

	cfg.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/", scanBaseURL(cfg, ""))
	assert.Equal(t, "http://override/", scanBaseURL(cfg, "http://override//"))
}

func TestServiceUnsupported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("service control needs the Windows service manager")
	}
	_, err := run(t, "service", "start")
	assert.True(t, errors.Is(err, autostart.ErrServiceUnsupported))
}

func TestRootWithoutUI(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "scan")

	calls := 0
	cmd := NewRootCmd(func() error { calls++; return nil })
	cmd.SetArgs([]string{"ui"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, calls)
}
