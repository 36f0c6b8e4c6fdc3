// Package photoinfo reports per-file detail for one photo: every folder variant
// with its size, and the capture metadata stored in the image's EXIF block.
package photoinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"photo-manifest/internal/files"
	"photo-manifest/internal/manifest"
)

var ErrNotFound = errors.New("photo not found")

type Variant struct {
	Folder string `json:"folder"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
}

type Info struct {
	Filename    string     `json:"filename"`
	Variants    []Variant  `json:"variants"`
	Source      string     `json:"exif_source,omitempty"`
	CaptureDate *time.Time `json:"capture_date,omitempty"`
	CameraMake  string     `json:"camera_make,omitempty"`
	CameraModel string     `json:"camera_model,omitempty"`
}

// Read collects the variants of filename and decodes EXIF from the first one
// in size priority order. Images without EXIF are not an error.
func Read(ctx context.Context, store files.Store, opts manifest.Options, filename string) (Info, error) {
	if err := files.ValidateFilename(filename); err != nil {
		return Info{}, err
	}
	if !opts.IsImage(filename) {
		return Info{}, files.ErrInvalidPath
	}

	info := Info{Filename: filename, Variants: []Variant{}}
	present := map[string]string{}
	for _, folder := range opts.Folders {
		rel := folder + "/" + filename
		ok, err := store.FileExists(ctx, rel)
		if err != nil {
			return Info{}, fmt.Errorf("check file %q: %w", rel, err)
		}
		if !ok {
			continue
		}
		size, err := store.FileSize(ctx, rel)
		if err != nil {
			return Info{}, fmt.Errorf("size of %q: %w", rel, err)
		}
		info.Variants = append(info.Variants, Variant{Folder: folder, Path: rel, Size: size})
		present[folder] = rel
	}
	if len(info.Variants) == 0 {
		return Info{}, ErrNotFound
	}

	for _, folder := range opts.SizePriority {
		rel, ok := present[folder]
		if !ok {
			continue
		}
		meta, err := readExif(ctx, store, rel)
		if err != nil {
			return Info{}, err
		}
		if meta == nil {
			continue
		}
		info.Source = rel
		applyExif(&info, meta)
		break
	}

	return info, nil
}

// readExif returns nil when the file carries no decodable EXIF block.
func readExif(ctx context.Context, store files.Store, rel string) (*exif.Exif, error) {
	obj, err := store.Open(ctx, rel)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", rel, err)
	}
	defer obj.Content.Close()

	x, err := exif.Decode(obj.Content)
	if err != nil && (exif.IsCriticalError(err) || x == nil) {
		return nil, nil
	}
	return x, nil
}

func applyExif(info *Info, x *exif.Exif) {
	if t, err := x.DateTime(); err == nil {
		info.CaptureDate = &t
	}
	info.CameraMake = stringTag(x, exif.Make)
	info.CameraModel = stringTag(x, exif.Model)
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}
