package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newStore(t *testing.T) (*OSStore, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewOSStore(root)
	if err != nil {
		t.Fatalf("NewOSStore: %v", err)
	}
	return store, root
}

func TestNewOSStoreRequiresRoot(t *testing.T) {
	if _, err := NewOSStore("  "); err == nil {
		t.Fatal("expected blank root to error")
	}
}

func TestWriteAndReadFile(t *testing.T) {
	store, root := newStore(t)
	ctx := context.Background()

	if err := store.WriteFile(ctx, "docs/overview/index.html", strings.NewReader("<html>")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := store.ReadFile(ctx, "docs/overview/index.html")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "<html>" {
		t.Fatalf("unexpected content %q", data)
	}

	// Files land beneath the root on disk.
	if _, err := os.Stat(filepath.Join(root, "docs", "overview", "index.html")); err != nil {
		t.Fatalf("expected file under root: %v", err)
	}
}

func TestWriteFileRequiresContent(t *testing.T) {
	store, _ := newStore(t)
	if err := store.WriteFile(context.Background(), "file.txt", nil); err == nil {
		t.Fatal("expected nil reader to error")
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for _, path := range []string{"../outside.txt", "..", "/etc/passwd"} {
		if err := store.WriteFile(ctx, path, strings.NewReader("x")); err == nil {
			t.Fatalf("expected %q to be rejected", path)
		}
		if _, err := store.ReadFile(ctx, path); err == nil {
			t.Fatalf("expected read of %q to be rejected", path)
		}
	}

	// Interior dot segments that stay inside the root are fine.
	if err := store.WriteFile(ctx, "docs/../docs/file.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("normalised interior path should be accepted: %v", err)
	}
}

func TestRemoveToleratesMissingFiles(t *testing.T) {
	store, _ := newStore(t)
	if err := store.Remove(context.Background(), "never-written.txt"); err != nil {
		t.Fatalf("Remove of missing file should be a no-op: %v", err)
	}
}

func TestRemoveAllClearsRoot(t *testing.T) {
	store, root := newStore(t)
	ctx := context.Background()

	if err := store.WriteFile(ctx, "docs/a.html", strings.NewReader("a")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := store.RemoveAll(ctx, ""); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "docs")); !os.IsNotExist(err) {
		t.Fatalf("expected root contents to be removed")
	}
}

func TestEnsureDir(t *testing.T) {
	store, root := newStore(t)
	if err := store.EnsureDir(context.Background(), "assets/css"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "assets", "css"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, got %v %v", info, err)
	}
}

func TestIsNotExist(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.ReadFile(context.Background(), "missing.txt")
	if !IsNotExist(err) {
		t.Fatalf("expected IsNotExist to match, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.WriteFile(ctx, "file.txt", strings.NewReader("x")); err == nil {
		t.Fatal("expected cancelled context to abort writes")
	}
	if _, err := store.ReadFile(ctx, "file.txt"); err == nil {
		t.Fatal("expected cancelled context to abort reads")
	}
}
