package generator

import (
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-docsite/docs"
	"github.com/goliatone/go-docsite/internal/registry"
)

// SiteMetadata carries site-wide values into templates.
type SiteMetadata struct {
	Title   string
	Tagline string
	BaseURL string
	// CurrentLabel is the display name of the working tree, e.g. "next".
	CurrentLabel string
	Versions     []docs.VersionInfo
}

// PageContext carries the page being rendered.
type PageContext struct {
	Title        string
	ID           string
	OriginalID   string
	Description  string
	Keywords     []string
	HideTitle    bool
	Version      string
	Route        string
	Content      template.HTML
	LastModified time.Time
}

// NavItem is one sidebar entry resolved to a route.
type NavItem struct {
	ID     string
	Title  string
	Route  string
	Active bool
}

// NavSection groups sidebar entries under a category heading.
type NavSection struct {
	Sidebar  string
	Category string
	Items    []NavItem
}

// ThemeContext exposes the active theme to templates.
type ThemeContext struct {
	Name    string
	Variant string
	Assets  []string
}

// BuildMetadata records when and how the page was produced.
type BuildMetadata struct {
	GeneratedAt time.Time
	Incremental bool
}

// TemplateContext is the root object handed to the layout template.
type TemplateContext struct {
	Site    SiteMetadata
	Page    PageContext
	Sidebar []NavSection
	Theme   ThemeContext
	Build   BuildMetadata
}

// buildNavSections flattens a version's sidebar into ordered sections, with
// routes resolved and the current page marked active.
func buildNavSections(corpus *registry.Corpus, version string, routes map[string]string, activeID string) []NavSection {
	sidebar := corpus.Sidebar(version)
	if sidebar == nil {
		return nil
	}

	sidebarNames := make([]string, 0, len(sidebar))
	for name := range sidebar {
		sidebarNames = append(sidebarNames, name)
	}
	sort.Strings(sidebarNames)

	var sections []NavSection
	for _, name := range sidebarNames {
		categories := sidebar[name]
		categoryNames := make([]string, 0, len(categories))
		for category := range categories {
			categoryNames = append(categoryNames, category)
		}
		sort.Strings(categoryNames)

		for _, category := range categoryNames {
			section := NavSection{
				Sidebar:  name,
				Category: category,
			}
			for _, id := range categories[category] {
				item := NavItem{
					ID:     id,
					Title:  id,
					Route:  routes[id],
					Active: id == activeID,
				}
				if doc, err := corpus.Get(version, id); err == nil {
					item.Title = navTitle(doc)
				}
				section.Items = append(section.Items, item)
			}
			sections = append(sections, section)
		}
	}
	return sections
}

func navTitle(doc *docs.Document) string {
	if label := strings.TrimSpace(doc.FrontMatter.SidebarLabel); label != "" {
		return label
	}
	if title := strings.TrimSpace(doc.FrontMatter.Title); title != "" {
		return title
	}
	return strings.TrimSpace(doc.FrontMatter.ID)
}
