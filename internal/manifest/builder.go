package manifest

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"
)

// CheckFolders reports which configured folders exist. A missing folder is not
// an error.
func CheckFolders(ctx context.Context, r Reader, opts Options) (Presence, error) {
	presence := make(Presence, 0, len(opts.Folders))
	for _, folder := range opts.Folders {
		ok, err := r.DirExists(ctx, folder)
		if err != nil {
			return nil, fmt.Errorf("check folder %q: %w", folder, err)
		}
		presence = append(presence, FolderState{Name: folder, Exists: ok})
	}
	return presence, nil
}

// ReferenceFolder returns the first existing folder in configured order.
func ReferenceFolder(p Presence) (string, bool) {
	for _, s := range p {
		if s.Exists {
			return s.Name, true
		}
	}
	return "", false
}

// ListImages returns the sorted names of the regular files in dir that carry an
// allowed image extension. Names that are not valid UTF-8 are skipped.
func ListImages(ctx context.Context, r Reader, dir string, opts Options) ([]string, error) {
	entries, err := r.ListDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list folder %q: %w", dir, err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}
		if !entry.Regular {
			continue
		}
		// Paths and URLs must round-trip through JSON unchanged.
		if !utf8.ValidString(entry.Name) {
			continue
		}
		if opts.IsImage(entry.Name) {
			images = append(images, entry.Name)
		}
	}
	sort.Strings(images)
	return images, nil
}

// Build scans the folders and assembles the manifest. Missing folders and empty
// reference folders produce a failed Result, not an error; only reader failures
// are returned as errors.
func Build(ctx context.Context, r Reader, opts Options, baseURL string) (Result, error) {
	presence, err := CheckFolders(ctx, r, opts)
	if err != nil {
		return Result{}, err
	}

	reference, ok := ReferenceFolder(presence)
	if !ok {
		return Result{Outcome: NoFolders, BaseURL: baseURL, Presence: presence}, nil
	}

	names, err := ListImages(ctx, r, reference, opts)
	if err != nil {
		return Result{}, err
	}
	if len(names) == 0 {
		return Result{Outcome: NoImages, BaseURL: baseURL, Presence: presence}, nil
	}

	photos := make([]ImageRecord, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		rec, err := reconcile(ctx, r, opts, baseURL, name)
		if err != nil {
			return Result{}, err
		}
		photos = append(photos, rec)
	}

	return Result{
		Outcome:  OK,
		BaseURL:  baseURL,
		Presence: presence,
		Photos:   photos,
	}, nil
}

func reconcile(ctx context.Context, r Reader, opts Options, baseURL, name string) (ImageRecord, error) {
	rec := ImageRecord{
		Filename: name,
		Variants: make([]Variant, 0, len(opts.Folders)),
	}
	for _, folder := range opts.Folders {
		rel := folder + "/" + name
		ok, err := r.FileExists(ctx, rel)
		if err != nil {
			return ImageRecord{}, fmt.Errorf("check file %q: %w", rel, err)
		}
		v := Variant{Folder: folder}
		if ok {
			v.Present = true
			v.Path = rel
			v.URL = baseURL + rel
		}
		rec.Variants = append(rec.Variants, v)
	}

	for _, folder := range opts.SizePriority {
		v, ok := rec.Variant(folder)
		if !ok || !v.Present {
			continue
		}
		size, err := r.FileSize(ctx, v.Path)
		if err != nil {
			return ImageRecord{}, fmt.Errorf("size of %q: %w", v.Path, err)
		}
		rec.Size = &size
		break
	}
	return rec, nil
}
