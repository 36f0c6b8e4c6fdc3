package manifest

import "context"

// Entry is one item of a directory listing.
type Entry struct {
	Name    string
	Regular bool
}

// Reader is the read-only filesystem capability the builder needs. Paths are
// slash separated and relative to the photo root. A missing directory or file is
// reported as false, not as an error.
type Reader interface {
	DirExists(ctx context.Context, dir string) (bool, error)
	ListDir(ctx context.Context, dir string) ([]Entry, error)
	FileExists(ctx context.Context, name string) (bool, error)
	FileSize(ctx context.Context, name string) (int64, error)
}

// Request holds the request attributes the base URL is derived from.
type Request struct {
	Secure     bool
	Host       string
	ScriptPath string
}
