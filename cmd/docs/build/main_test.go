package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-docsite/cmd/docs/internal/bootstrap"
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

func buildableCorpus() map[string]string {
	return map[string]string{
		"versions.json": `["1.0.0"]`,
		"sidebars.json": `{"docs": {"Basics": ["overview"]}}`,
		"overview.md":   "---\ntitle: Overview\nid: overview\n---\n\n# Overview\n",
		"version-1.0.0/overview.md": "---\ntitle: Overview\nid: version-1.0.0-overview\n" +
			"original_id: overview\n---\n\nFrozen overview.\n",
	}
}

func TestRunBuildWritesSite(t *testing.T) {
	root := writeCorpus(t, buildableCorpus())
	output := t.TempDir()

	if err := runBuild([]string{
		"-docs-root", root,
		"-output", output,
		"-base-url", "https://docs.example.com",
		"-site-title", "Docs",
	}); err != nil {
		t.Fatalf("runBuild returned error: %v", err)
	}

	for _, rel := range []string{
		"docs/overview/index.html",
		"docs/1.0.0/overview/index.html",
		"sitemap.xml",
	} {
		if _, err := os.Stat(filepath.Join(output, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected artifact %s: %v", rel, err)
		}
	}
}

func TestRunBuildDryRun(t *testing.T) {
	root := writeCorpus(t, buildableCorpus())
	output := t.TempDir()

	if err := runBuild([]string{"-docs-root", root, "-output", output, "-dry-run"}); err != nil {
		t.Fatalf("runBuild returned error: %v", err)
	}

	entries, err := os.ReadDir(output)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run wrote artifacts: %#v", entries)
	}
}

func TestRunBuildNarrowsVersions(t *testing.T) {
	root := writeCorpus(t, buildableCorpus())
	output := t.TempDir()

	if err := runBuild([]string{"-docs-root", root, "-output", output, "-versions", "1.0.0"}); err != nil {
		t.Fatalf("runBuild returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "docs", "1.0.0", "overview", "index.html")); err != nil {
		t.Fatalf("expected snapshot page: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "docs", "overview")); !os.IsNotExist(err) {
		t.Fatal("current tree should not have been built")
	}
}

func TestRunBuildPlumbsOptions(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	var captured bootstrap.Options
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		captured = opts
		return original(opts)
	}

	root := writeCorpus(t, buildableCorpus())
	output := t.TempDir()

	if err := runBuild([]string{
		"-docs-root", root,
		"-output", output,
		"-incremental",
		"-sitemap=false",
	}); err != nil {
		t.Fatalf("runBuild returned error: %v", err)
	}

	if !captured.GeneratorEnabled || captured.OutputDir != output {
		t.Fatalf("unexpected bootstrap options %#v", captured)
	}
	if captured.Incremental == nil || !*captured.Incremental {
		t.Fatal("expected -incremental to be plumbed through")
	}
	if captured.GenerateSitemap == nil || *captured.GenerateSitemap {
		t.Fatal("expected -sitemap=false to be plumbed through")
	}
	if captured.CleanBuild != nil {
		t.Fatal("unset -clean must stay nil so config defaults apply")
	}
}
