package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-manifest/internal/manifest"
	"photo-manifest/internal/platform/paths"
)

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("apiListen: 0.0.0.0:9090\nstorage:\n  root: /srv/photos\n"), 0o600))

	cfg, err := LoadFile(p)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.APIListen)
	assert.Equal(t, "/srv/photos", cfg.Storage.Root)
	assert.Equal(t, StorageLocal, cfg.Storage.Backend)
	assert.Equal(t, "/index.json", cfg.ManifestPath)
	assert.Equal(t, []string{"thumbnail", "original", "compress"}, cfg.Folders)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("apiListn: 0.0.0.0:9090\n"), 0o600))

	_, err := LoadFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiListn")
}

func TestLoadFileEmpty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, nil, 0o600))

	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv(paths.ConfigEnv, p)

	cfg := Default()
	cfg.APIListen = "127.0.0.1:7000"
	cfg.PublicBaseURL = "https://cdn.example.com/gallery"
	cfg.Storage = StorageConfig{
		Backend: StorageS3,
		S3:      S3Config{Endpoint: "minio:9000", Bucket: "photos", Prefix: "site"},
	}
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(paths.ConfigEnv, filepath.Join(t.TempDir(), "config.yaml"))

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestManifestOptions(t *testing.T) {
	cfg := Default()
	cfg.Folders = nil
	cfg.ImageExtensions = []string{" ", ""}
	cfg.SizePriority = nil
	assert.Equal(t, manifest.DefaultOptions(), cfg.ManifestOptions())

	cfg.Folders = []string{"small", "original"}
	opts := cfg.ManifestOptions()
	assert.Equal(t, manifest.FolderSet{"small", "original"}, opts.Folders)
	assert.Equal(t, []string{"original", "small"}, opts.SizePriority)
	require.NoError(t, opts.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default ok", mutate: func(*Config) {}},
		{name: "missing listen", mutate: func(c *Config) { c.APIListen = "" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.APIListen = "127.0.0.1:0" }, wantErr: true},
		{name: "no host", mutate: func(c *Config) { c.APIListen = ":8080" }, wantErr: true},
		{name: "relative manifest path", mutate: func(c *Config) { c.ManifestPath = "index.json" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "s3 without bucket", mutate: func(c *Config) {
			c.Storage.Backend = StorageS3
			c.Storage.S3.Endpoint = "minio:9000"
		}, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "ftp" }, wantErr: true},
		{name: "duplicate folder", mutate: func(c *Config) { c.Folders = []string{"a", "a"} }, wantErr: true},
		{name: "nested folder", mutate: func(c *Config) { c.Folders = []string{"a/b"} }, wantErr: true},
		{name: "unknown size folder", mutate: func(c *Config) { c.SizePriority = []string{"large"} }, wantErr: true},
		{name: "folder with route braces", mutate: func(c *Config) { c.Folders = []string{"thumb{1}", "original"} }, wantErr: true},
		{name: "folder with space", mutate: func(c *Config) { c.Folders = []string{"my photos"} }, wantErr: true},
		{name: "folder shadows filename", mutate: func(c *Config) { c.Folders = []string{"thumbnail", "filename"} }, wantErr: true},
		{name: "folder shadows url key", mutate: func(c *Config) { c.Folders = []string{"x", "x_url"} }, wantErr: true},
		{name: "manifest path with braces", mutate: func(c *Config) { c.ManifestPath = "/{$}" }, wantErr: true},
		{name: "manifest path with query", mutate: func(c *Config) { c.ManifestPath = "/index.json?x=1" }, wantErr: true},
		{name: "manifest path double slash", mutate: func(c *Config) { c.ManifestPath = "/a//index.json" }, wantErr: true},
		{name: "nested manifest path", mutate: func(c *Config) { c.ManifestPath = "/gallery/2024/index.json" }},
		{name: "directory manifest path", mutate: func(c *Config) { c.ManifestPath = "/gallery/" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
