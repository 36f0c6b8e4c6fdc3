package autostart

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDaemonPath(t *testing.T) {
	dir := t.TempDir()
	cli := filepath.Join(dir, "photo-manifest")

	want := filepath.Join(dir, "photo-manifestd")
	if runtime.GOOS == "windows" {
		want += ".exe"
	}
	if got := DaemonPath(cli); got != want {
		t.Fatalf("DaemonPath(%q) = %q, want %q", cli, got, want)
	}
}
