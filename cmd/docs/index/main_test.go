package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		target := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

func TestRunSyncRequiresDSN(t *testing.T) {
	err := runSync([]string{"-docs-root", t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "dsn is required") {
		t.Fatalf("expected missing DSN error, got %v", err)
	}
}

func TestRunSyncIndexesCorpus(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"overview.md": "---\ntitle: Overview\nid: overview\n---\n\n# Overview\n",
		"install.md":  "---\ntitle: Install\nid: install\n---\n\n# Install\n",
	})
	dsn := filepath.Join(t.TempDir(), "index.db")

	if err := runSync([]string{"-docs-root", root, "-dsn", dsn}); err != nil {
		t.Fatalf("runSync returned error: %v", err)
	}
	if _, err := os.Stat(dsn); err != nil {
		t.Fatalf("expected sqlite database to be created: %v", err)
	}

	// A second run against the same store must stay idempotent.
	if err := runSync([]string{"-docs-root", root, "-dsn", dsn}); err != nil {
		t.Fatalf("second runSync returned error: %v", err)
	}
}
