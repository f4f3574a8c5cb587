package generator

import "testing"

func TestRouteFor(t *testing.T) {
	router, err := newRouter(RoutesConfig{BaseURL: "https://docs.example.com"})
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}

	cases := []struct {
		name    string
		version string
		slug    string
		want    string
	}{
		{name: "current page", version: "current", slug: "overview", want: "/docs/overview"},
		{name: "snapshot page", version: "1.0.0", slug: "overview", want: "/docs/1.0.0/overview"},
		{name: "hyphenated label", version: "2.0-rc1", slug: "getting-started", want: "/docs/2.0-rc1/getting-started"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := router.routeFor(tc.version, tc.slug)
			if err != nil {
				t.Fatalf("routeFor(%q, %q): %v", tc.version, tc.slug, err)
			}
			if got != tc.want {
				t.Fatalf("routeFor(%q, %q) = %q, want %q", tc.version, tc.slug, got, tc.want)
			}
		})
	}
}

func TestNewRouterUnknownGroup(t *testing.T) {
	if _, err := newRouter(RoutesConfig{Group: "missing-group"}); err == nil {
		t.Fatalf("expected unknown group to error")
	}
}

func TestBuildOutputPath(t *testing.T) {
	cases := []struct {
		route string
		want  string
	}{
		{route: "/docs/overview", want: "docs/overview/index.html"},
		{route: "/docs/1.0.0/overview", want: "docs/1.0.0/overview/index.html"},
		{route: "/", want: "index.html"},
		{route: "", want: "index.html"},
	}
	for _, tc := range cases {
		if got := buildOutputPath(tc.route); got != tc.want {
			t.Fatalf("buildOutputPath(%q) = %q, want %q", tc.route, got, tc.want)
		}
	}
}

func TestJoinOutputPath(t *testing.T) {
	if got := joinOutputPath("", "sitemap.xml"); got != "sitemap.xml" {
		t.Fatalf("joinOutputPath empty base = %q", got)
	}
	if got := joinOutputPath("site", "docs/overview/index.html"); got != "site/docs/overview/index.html" {
		t.Fatalf("joinOutputPath = %q", got)
	}
	if got := joinOutputPath("/site/", "/sitemap.xml"); got != "site/sitemap.xml" {
		t.Fatalf("joinOutputPath trims separators, got %q", got)
	}
}
