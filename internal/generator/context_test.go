package generator

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-docsite/internal/registry"
)

func navCorpus(t *testing.T) *registry.Corpus {
	t.Helper()
	fsys := fstest.MapFS{
		"sidebars.json": &fstest.MapFile{Data: []byte(`{
			"docs": {
				"Guides": ["install"],
				"Basics": ["overview"]
			}
		}`)},
		"overview.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Overview\nid: overview\nsidebar_label: Start Here\n---\n\ncontent\n"),
		},
		"install.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Install\nid: install\n---\n\ncontent\n"),
		},
	}
	corpus, err := registry.NewServiceWithFS(fsys, registry.Config{Recursive: true}, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	return corpus
}

func TestBuildNavSections(t *testing.T) {
	corpus := navCorpus(t)
	routes := map[string]string{
		"overview": "/docs/overview",
		"install":  "/docs/install",
	}

	sections := buildNavSections(corpus, "current", routes, "overview")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %#v", sections)
	}
	// Categories are ordered alphabetically within a sidebar.
	if sections[0].Category != "Basics" || sections[1].Category != "Guides" {
		t.Fatalf("unexpected category order %q, %q", sections[0].Category, sections[1].Category)
	}

	item := sections[0].Items[0]
	if item.ID != "overview" || !item.Active {
		t.Fatalf("expected overview to be active, got %#v", item)
	}
	if item.Title != "Start Here" {
		t.Fatalf("sidebar_label should win over title, got %q", item.Title)
	}
	if item.Route != "/docs/overview" {
		t.Fatalf("unexpected route %q", item.Route)
	}

	install := sections[1].Items[0]
	if install.Title != "Install" || install.Active {
		t.Fatalf("unexpected install item %#v", install)
	}
}

func TestBuildNavSectionsWithoutSidebar(t *testing.T) {
	corpus := navCorpus(t)
	if sections := buildNavSections(corpus, "1.0.0", nil, ""); sections != nil {
		t.Fatalf("expected nil sections for version without sidebar, got %#v", sections)
	}
}

func TestDefaultLayoutRender(t *testing.T) {
	renderer, err := newPageRenderer(nil)
	if err != nil {
		t.Fatalf("newPageRenderer: %v", err)
	}

	html, err := renderer.render(TemplateContext{
		Site: SiteMetadata{
			Title:        "Docs",
			Tagline:      "All the documentation",
			CurrentLabel: "next",
			Versions:     navCorpus(t).Versions(),
		},
		Page: PageContext{
			Title:       "Overview",
			ID:          "overview",
			Version:     "current",
			Route:       "/docs/overview",
			Description: "High level tour",
			Content:     "<p>rendered body</p>",
		},
		Sidebar: []NavSection{
			{Category: "Basics", Items: []NavItem{{ID: "overview", Title: "Overview", Route: "/docs/overview", Active: true}}},
		},
		Theme: ThemeContext{Name: "plain", Assets: []string{"css/main.css", "js/app.js"}},
		Build: BuildMetadata{GeneratedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, fragment := range []string{
		"<title>Overview | Docs</title>",
		`<meta name="description" content="High level tour">`,
		`<link rel="stylesheet" href="/assets/css/main.css">`,
		`<script src="/assets/js/app.js"></script>`,
		"<p>rendered body</p>",
		"<h1>Overview</h1>",
		`<li class="active"><a href="/docs/overview">Overview</a></li>`,
		// The working tree renders under its display label.
		"next",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in rendered page:\n%s", fragment, html)
		}
	}
}

func TestDefaultLayoutHideTitle(t *testing.T) {
	renderer, err := newPageRenderer(nil)
	if err != nil {
		t.Fatalf("newPageRenderer: %v", err)
	}

	html, err := renderer.render(TemplateContext{
		Page: PageContext{Title: "Hidden", HideTitle: true, Content: "<p>body</p>"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<h1>Hidden</h1>") {
		t.Fatalf("hide_title page must not repeat the title:\n%s", html)
	}
}
