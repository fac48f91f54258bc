package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureRoot(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "env")
		got, err := ensureRoot(path)
		if err != nil {
			t.Fatalf("ensureRoot() error = %v", err)
		}
		if got != path {
			t.Errorf("ensureRoot() = %q, want %q", got, path)
		}
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			t.Errorf("directory not created: %v", err)
		}
	})

	t.Run("accepts existing directory", func(t *testing.T) {
		path := t.TempDir()
		if _, err := ensureRoot(path); err != nil {
			t.Errorf("ensureRoot() error = %v", err)
		}
	})

	t.Run("rejects a plain file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "occupied")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ensureRoot(path); err == nil {
			t.Error("ensureRoot() succeeded on a file, want error")
		}
	})
}
