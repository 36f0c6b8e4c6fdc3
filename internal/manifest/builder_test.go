package manifest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-manifest/internal/files"
	"photo-manifest/internal/manifest"
)

const base = "http://example.com/gallery/"

func seed(t *testing.T, dirs []string, contents map[string]string) *files.LocalStore {
	t.Helper()
	store := files.NewMemoryStore()
	fs := store.Filesystem()
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll(d, 0o755))
	}
	for name, body := range contents {
		require.NoError(t, util.WriteFile(fs, name, []byte(body), 0o644))
	}
	return store
}

func build(t *testing.T, r manifest.Reader) manifest.Result {
	t.Helper()
	res, err := manifest.Build(context.Background(), r, manifest.DefaultOptions(), base)
	require.NoError(t, err)
	return res
}

func decode(t *testing.T, res manifest.Result) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, manifest.Encode(&buf, res))
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestBuildNoFolders(t *testing.T) {
	store := seed(t, []string{"other"}, map[string]string{"a.jpg": "x"})

	res := build(t, store)
	assert.False(t, res.Success())
	assert.Equal(t, manifest.NoFolders, res.Outcome)
	assert.Empty(t, res.Photos)
	assert.Equal(t, "folders thumbnail, original or compress were not found", res.Message())

	out := decode(t, res)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, []any{}, out["photos"])
	assert.Equal(t, base, out["base_url"])
	assert.NotContains(t, out, "count")
	assert.NotContains(t, out, "folders")
}

func TestBuildNoImagesInReference(t *testing.T) {
	// thumbnail exists but only holds non-images, original has images that must
	// not be consulted.
	store := seed(t, []string{"thumbnail/sub.jpg"}, map[string]string{
		"thumbnail/readme.txt": "x",
		"original/a.jpg":       "x",
	})

	res := build(t, store)
	assert.Equal(t, manifest.NoImages, res.Outcome)
	assert.Empty(t, res.Photos)
	assert.NotEqual(t, manifest.Result{Outcome: manifest.NoFolders}.Message(), res.Message())
}

func TestBuildExample(t *testing.T) {
	store := seed(t, []string{"compress"}, map[string]string{
		"thumbnail/a.jpg": "t",
		"thumbnail/b.png": "thumb-b",
		"original/a.jpg":  "original-a",
	})

	res := build(t, store)
	require.True(t, res.Success())
	require.Equal(t, 2, res.Count())
	assert.Equal(t, "found 2 images", res.Message())

	out := decode(t, res)
	assert.Equal(t, true, out["success"])
	assert.EqualValues(t, 2, out["count"])
	assert.Equal(t, map[string]any{"thumbnail": true, "original": true, "compress": true}, out["folders"])

	photos := out["photos"].([]any)
	assert.Equal(t, map[string]any{
		"thumbnail":     "thumbnail/a.jpg",
		"thumbnail_url": base + "thumbnail/a.jpg",
		"original":      "original/a.jpg",
		"original_url":  base + "original/a.jpg",
		"compress":      nil,
		"compress_url":  nil,
		"filename":      "a.jpg",
		"size":          float64(len("original-a")),
	}, photos[0])
	assert.Equal(t, map[string]any{
		"thumbnail":     "thumbnail/b.png",
		"thumbnail_url": base + "thumbnail/b.png",
		"original":      nil,
		"original_url":  nil,
		"compress":      nil,
		"compress_url":  nil,
		"filename":      "b.png",
		"size":          float64(len("thumb-b")),
	}, photos[1])
}

func TestBuildReferenceFallsThroughPriority(t *testing.T) {
	store := seed(t, nil, map[string]string{
		"original/z.JPG": "zz",
		"compress/a.jpg": "only-compress",
		"compress/z.JPG": "z",
	})

	res := build(t, store)
	require.True(t, res.Success())
	require.Len(t, res.Photos, 1)
	assert.Equal(t, "z.JPG", res.Photos[0].Filename)
	require.NotNil(t, res.Photos[0].Size)
	assert.EqualValues(t, 2, *res.Photos[0].Size)

	th, _ := res.Photos[0].Variant("thumbnail")
	assert.False(t, th.Present)
	assert.False(t, res.Presence.Exists("thumbnail"))
}

func TestBuildSizePriority(t *testing.T) {
	store := seed(t, nil, map[string]string{
		"thumbnail/a.jpg": "1",
		"compress/a.jpg":  "123",
	})

	res := build(t, store)
	require.Len(t, res.Photos, 1)
	require.NotNil(t, res.Photos[0].Size)
	assert.EqualValues(t, 3, *res.Photos[0].Size)
}

func TestBuildSortedAndFiltered(t *testing.T) {
	store := seed(t, []string{"thumbnail/dir.png"}, map[string]string{
		"thumbnail/b.webp":    "x",
		"thumbnail/B.GIF":     "x",
		"thumbnail/a.jpeg":    "x",
		"thumbnail/_c.bmp":    "x",
		"thumbnail/noext":     "x",
		"thumbnail/x.tiff":    "x",
		"thumbnail/.jpg":      "x",
		"original/readme.txt": "x",
	})

	res := build(t, store)
	names := make([]string, 0, len(res.Photos))
	for _, p := range res.Photos {
		names = append(names, p.Filename)
	}
	assert.Equal(t, []string{".jpg", "B.GIF", "_c.bmp", "a.jpeg", "b.webp"}, names)
	assert.True(t, sort.StringsAreSorted(names))
}

func TestBuildIdempotent(t *testing.T) {
	store := seed(t, nil, map[string]string{
		"thumbnail/a.jpg": "x",
		"original/a.jpg":  "xy",
		"compress/a.jpg":  "xyz",
	})

	var first, second bytes.Buffer
	require.NoError(t, manifest.Encode(&first, build(t, store)))
	require.NoError(t, manifest.Encode(&second, build(t, store)))
	assert.Equal(t, first.String(), second.String())
}

func TestBuildOnDisk(t *testing.T) {
	root := t.TempDir()
	for name, body := range map[string]string{
		"thumbnail/a.jpg": "t",
		"original/a.jpg":  "orig",
	} {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	if err := os.Symlink(filepath.Join(root, "original", "a.jpg"), filepath.Join(root, "thumbnail", "link.jpg")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "original"), filepath.Join(root, "thumbnail", "dir.jpg")))

	res := build(t, files.NewOSStore(root))
	require.True(t, res.Success())
	require.Len(t, res.Photos, 2)

	assert.Equal(t, "a.jpg", res.Photos[0].Filename)
	require.NotNil(t, res.Photos[0].Size)
	assert.EqualValues(t, 4, *res.Photos[0].Size)

	link := res.Photos[1]
	assert.Equal(t, "link.jpg", link.Filename)
	v, ok := link.Variant("thumbnail")
	require.True(t, ok)
	assert.True(t, v.Present)
	require.NotNil(t, link.Size)
	assert.EqualValues(t, 4, *link.Size)
}

func TestBuildSkipsNonUTF8Names(t *testing.T) {
	store := seed(t, nil, map[string]string{
		"thumbnail/ok.jpg":       "x",
		"thumbnail/bad\xff.jpg":  "x",
		"thumbnail/\xc3\x28.png": "x",
	})

	res := build(t, store)
	require.True(t, res.Success())
	require.Len(t, res.Photos, 1)
	assert.Equal(t, "ok.jpg", res.Photos[0].Filename)

	names, err := manifest.ListImages(context.Background(), store, "thumbnail", manifest.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.jpg"}, names)
}

type failingReader struct {
	manifest.Reader
	failOn string
}

var errDisk = errors.New("disk on fire")

func (f failingReader) FileExists(ctx context.Context, name string) (bool, error) {
	if name == f.failOn {
		return false, errDisk
	}
	return f.Reader.FileExists(ctx, name)
}

func TestBuildPropagatesReaderErrors(t *testing.T) {
	store := seed(t, nil, map[string]string{"thumbnail/a.jpg": "x"})

	_, err := manifest.Build(context.Background(), failingReader{Reader: store, failOn: "original/a.jpg"}, manifest.DefaultOptions(), base)
	require.ErrorIs(t, err, errDisk)
	assert.Contains(t, err.Error(), "original/a.jpg")
}

func TestBuildHonoursCancellation(t *testing.T) {
	store := seed(t, nil, map[string]string{"thumbnail/a.jpg": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := manifest.Build(ctx, store, manifest.DefaultOptions(), base)
	assert.ErrorIs(t, err, context.Canceled)
}
