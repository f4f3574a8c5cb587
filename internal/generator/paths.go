package generator

import (
	"fmt"
	"path"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-docsite/docs"
)

// Route names registered in the docs group.
const (
	DefaultRouteGroup     = "docs"
	DefaultCurrentRoute   = "page"
	DefaultVersionedRoute = "versioned"
)

// DefaultRouteConfig returns the urlkit route table used when the host
// application does not supply its own: current pages under /docs/:slug,
// snapshots under /docs/:version/:slug.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    DefaultRouteGroup,
				BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
				Paths: map[string]string{
					DefaultCurrentRoute:   "/docs/:slug",
					DefaultVersionedRoute: "/docs/:version/:slug",
				},
			},
		},
	}
}

// RoutesConfig points the generator at the urlkit group carrying doc routes.
type RoutesConfig struct {
	Manager        *urlkit.RouteManager
	Group          string
	CurrentRoute   string
	VersionedRoute string
	BaseURL        string
}

// router builds site-relative routes for pages through go-urlkit.
type router struct {
	group          *urlkit.Group
	baseURL        string
	currentRoute   string
	versionedRoute string
}

func newRouter(cfg RoutesConfig) (*router, error) {
	manager := cfg.Manager
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if manager == nil {
		manager = urlkit.NewRouteManager(DefaultRouteConfig(baseURL))
	}

	groupName := strings.TrimSpace(cfg.Group)
	if groupName == "" {
		groupName = DefaultRouteGroup
	}
	group, err := lookupGroup(manager, groupName)
	if err != nil {
		return nil, err
	}

	currentRoute := strings.TrimSpace(cfg.CurrentRoute)
	if currentRoute == "" {
		currentRoute = DefaultCurrentRoute
	}
	versionedRoute := strings.TrimSpace(cfg.VersionedRoute)
	if versionedRoute == "" {
		versionedRoute = DefaultVersionedRoute
	}

	return &router{
		group:          group,
		baseURL:        baseURL,
		currentRoute:   currentRoute,
		versionedRoute: versionedRoute,
	}, nil
}

// routeFor returns the site-relative route of a page slug within a version.
func (r *router) routeFor(version, slug string) (string, error) {
	routeName := r.currentRoute
	if !docs.IsCurrent(version) {
		routeName = r.versionedRoute
	}
	builder, err := safeBuilder(r.group, routeName)
	if err != nil {
		return "", err
	}

	builder = builder.WithParam("slug", slug)
	if !docs.IsCurrent(version) {
		builder = builder.WithParam("version", version)
	}

	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("generator: build route %s for %s@%s: %w", routeName, slug, version, err)
	}

	route := url
	if r.baseURL != "" {
		route = strings.TrimPrefix(route, r.baseURL)
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("generator: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("generator: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

// buildOutputPath maps a site-relative route to an output file below the
// output directory, using the directory/index.html convention.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

func joinOutputPath(base, rel string) string {
	if strings.TrimSpace(base) == "" {
		return strings.TrimLeft(rel, "/")
	}
	return path.Join(strings.Trim(base, "/"), rel)
}
