package secrets

import (
	"path/filepath"
	"testing"

	"photo-manifest/internal/platform/paths"
)

func TestSetGetDelete(t *testing.T) {
	t.Setenv(paths.ConfigEnv, filepath.Join(t.TempDir(), "config.yaml"))

	if _, err := Get("s3 key"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := Set("s3 key", []byte("hunter2")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := Get("s3 key")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "hunter2" {
		t.Fatalf("expected hunter2, got %q", got)
	}

	if err := Delete("s3 key"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := Get("s3 key"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		"":             "empty",
		"  ":           "empty",
		"a/b\\c":       "a_b_c",
		"s3_secret-1.": "s3_secret-1.",
	}
	for in, want := range tests {
		if got := sanitizeKey(in); got != want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
