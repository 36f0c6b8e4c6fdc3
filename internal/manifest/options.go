package manifest

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	FolderThumbnail = "thumbnail"
	FolderOriginal  = "original"
	FolderCompress  = "compress"
)

// FolderSet is the ordered list of scanned folders. Order decides which folder is
// the reference folder and the key order of every photo record.
type FolderSet []string

// Options is the immutable scan configuration handed to Build.
type Options struct {
	Folders      FolderSet
	Extensions   []string
	SizePriority []string
}

func DefaultFolders() FolderSet {
	return FolderSet{FolderThumbnail, FolderOriginal, FolderCompress}
}

func DefaultExtensions() []string {
	return []string{"jpg", "jpeg", "png", "gif", "bmp", "webp"}
}

// DefaultSizePriority differs from the folder order on purpose: size is read from
// the largest variant first.
func DefaultSizePriority() []string {
	return []string{FolderOriginal, FolderCompress, FolderThumbnail}
}

func DefaultOptions() Options {
	return Options{
		Folders:      DefaultFolders(),
		Extensions:   DefaultExtensions(),
		SizePriority: DefaultSizePriority(),
	}
}

func (o Options) Validate() error {
	if len(o.Folders) == 0 {
		return errors.New("at least one folder is required")
	}
	seen := make(map[string]bool, len(o.Folders))
	for _, f := range o.Folders {
		if err := validateFolderName(f); err != nil {
			return err
		}
		if seen[f] {
			return fmt.Errorf("folder %q listed twice", f)
		}
		seen[f] = true
	}
	for _, f := range o.Folders {
		if seen[f+"_url"] {
			return fmt.Errorf("folder %q collides with the URL key of folder %q", f+"_url", f)
		}
	}
	if len(o.Extensions) == 0 {
		return errors.New("at least one image extension is required")
	}
	for _, ext := range o.Extensions {
		if normalizeExt(ext) == "" {
			return fmt.Errorf("invalid image extension %q", ext)
		}
	}
	for _, f := range o.SizePriority {
		if !seen[f] {
			return fmt.Errorf("size priority names unknown folder %q", f)
		}
	}
	return nil
}

// HasFolder reports whether name is one of the configured folders.
func (o Options) HasFolder(name string) bool {
	for _, f := range o.Folders {
		if f == name {
			return true
		}
	}
	return false
}

// IsImage reports whether the file name carries an allowed extension.
func (o Options) IsImage(name string) bool {
	ext := extension(name)
	if ext == "" {
		return false
	}
	for _, allowed := range o.Extensions {
		if normalizeExt(allowed) == ext {
			return true
		}
	}
	return false
}

// routeUnsafeChars cannot appear in a folder name because the name becomes a
// literal URL path segment of the image route.
const routeUnsafeChars = "{}%?#"

// reservedRecordKeys are photo record keys a folder name would shadow.
var reservedRecordKeys = map[string]bool{"filename": true, "size": true}

func validateFolderName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name {
		return fmt.Errorf("invalid folder name %q", name)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("folder name %q must be a single path segment", name)
	}
	if strings.ContainsAny(name, routeUnsafeChars) {
		return fmt.Errorf("folder name %q must not contain any of %q", name, routeUnsafeChars)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("folder name %q must not contain spaces or control characters", name)
		}
	}
	if reservedRecordKeys[name] {
		return fmt.Errorf("folder name %q collides with a photo record key", name)
	}
	return nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// extension returns the lower-cased text after the last dot, or "" when the name
// has no dot.
func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
