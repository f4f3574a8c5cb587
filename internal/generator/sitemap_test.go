package generator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildSitemap(t *testing.T) {
	fallback := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	pages := []RenderedPage{
		{Route: "/docs/overview", LastModified: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{Route: "/docs/1.0.0/overview"},
		{Route: "/docs/overview"},
	}

	sitemap := buildSitemap("https://docs.example.com/", pages, fallback)

	if !strings.Contains(sitemap, "<loc>https://docs.example.com/docs/overview</loc>") {
		t.Fatalf("missing current page entry:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "<loc>https://docs.example.com/docs/1.0.0/overview</loc>") {
		t.Fatalf("missing snapshot entry:\n%s", sitemap)
	}
	if strings.Count(sitemap, "<loc>https://docs.example.com/docs/overview</loc>") != 1 {
		t.Fatalf("expected duplicate routes to collapse:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "<lastmod>2026-07-01T00:00:00Z</lastmod>") {
		t.Fatalf("missing page lastmod:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "<lastmod>2026-08-01T00:00:00Z</lastmod>") {
		t.Fatalf("missing fallback lastmod:\n%s", sitemap)
	}
}

func TestBuildSitemapOrdersLocations(t *testing.T) {
	sitemap := buildSitemap("https://example.com", []RenderedPage{
		{Route: "/docs/zeta"},
		{Route: "/docs/alpha"},
	}, time.Time{})

	alpha := strings.Index(sitemap, "/docs/alpha")
	zeta := strings.Index(sitemap, "/docs/zeta")
	if alpha < 0 || zeta < 0 || alpha > zeta {
		t.Fatalf("expected sorted output:\n%s", sitemap)
	}
}

func TestBuildRobots(t *testing.T) {
	robots := buildRobots("https://docs.example.com", true)
	if !strings.Contains(robots, "User-agent: *") || !strings.Contains(robots, "Allow: /") {
		t.Fatalf("unexpected robots output:\n%s", robots)
	}
	if !strings.Contains(robots, "Sitemap: https://docs.example.com/sitemap.xml") {
		t.Fatalf("missing sitemap reference:\n%s", robots)
	}

	robots = buildRobots("https://docs.example.com", false)
	if strings.Contains(robots, "Sitemap:") {
		t.Fatalf("sitemap reference should be omitted:\n%s", robots)
	}
}
