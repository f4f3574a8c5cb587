package registry

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-docsite/docs"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Config controls how the registry discovers the corpus.
type Config struct {
	// Root is the docs directory holding the current tree, version snapshots,
	// versions.json, and sidebar files.
	Root string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// VersionPatterns maps version labels to glob overrides for custom layouts.
	VersionPatterns map[string]string
}

// Service loads and exposes the versioned page registry.
type Service struct {
	cfg    Config
	fsys   fs.FS
	loader *markdown.Loader
	logger interfaces.Logger
}

// NewService constructs a registry over the configured docs root.
func NewService(cfg Config, logger interfaces.Logger) (*Service, error) {
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		return nil, docs.ErrCorpusNotLoaded
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("registry: stat docs root %s: %w", root, err)
	}
	return NewServiceWithFS(os.DirFS(root), cfg, logger), nil
}

// NewServiceWithFS constructs a registry over the supplied filesystem, letting
// tests and embedded corpora bypass the os-backed loader.
func NewServiceWithFS(fsys fs.FS, cfg Config, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{
		VersionPatterns: cfg.VersionPatterns,
		Pattern:         cfg.Pattern,
		Recursive:       cfg.Recursive,
	})
	return &Service{
		cfg:    cfg,
		fsys:   fsys,
		loader: loader,
		logger: logger,
	}
}

// Duplicate records a page whose id collides with an earlier page in the same
// version. The first page wins; lint surfaces the collision.
type Duplicate struct {
	Version   string
	ID        string
	Path      string
	FirstPath string
}

// Corpus is the loaded, immutable view of the documentation set.
type Corpus struct {
	versions   []docs.VersionInfo
	pages      map[string]map[string]*docs.Document
	byOriginal map[string]map[string]*docs.Document
	sidebars   map[string]Sidebar
	duplicates []Duplicate
}

// Load walks the corpus and builds the versioned page registry.
func (s *Service) Load(ctx context.Context) (*Corpus, error) {
	labels, err := LoadVersions(s.fsys)
	if err != nil {
		return nil, err
	}

	results, err := s.loader.LoadDirectory(ctx, ".", markdown.LoadParams{})
	if err != nil {
		return nil, err
	}

	corpus := &Corpus{
		pages:      map[string]map[string]*docs.Document{},
		byOriginal: map[string]map[string]*docs.Document{},
		sidebars:   map[string]Sidebar{},
	}

	known := map[string]struct{}{docs.CurrentVersion: {}}
	for _, label := range labels {
		known[label] = struct{}{}
	}

	var extras []string
	for _, result := range results {
		doc := result.Document
		version := doc.Version

		if _, ok := known[version]; !ok {
			known[version] = struct{}{}
			extras = append(extras, version)
		}

		byID := corpus.pages[version]
		if byID == nil {
			byID = map[string]*docs.Document{}
			corpus.pages[version] = byID
		}

		id := strings.TrimSpace(doc.FrontMatter.ID)
		if id == "" {
			// Pages without an id stay addressable by path for lint purposes.
			id = doc.FilePath
		}

		if first, exists := byID[id]; exists {
			corpus.duplicates = append(corpus.duplicates, Duplicate{
				Version:   version,
				ID:        id,
				Path:      doc.FilePath,
				FirstPath: first.FilePath,
			})
			continue
		}
		byID[id] = doc

		original := EffectiveOriginalID(doc)
		if original != "" {
			byOriginal := corpus.byOriginal[version]
			if byOriginal == nil {
				byOriginal = map[string]*docs.Document{}
				corpus.byOriginal[version] = byOriginal
			}
			if _, exists := byOriginal[original]; !exists {
				byOriginal[original] = doc
			}
		}
	}

	// Snapshot directories absent from versions.json still participate in the
	// registry; they sort after the manifest entries.
	sort.Strings(extras)
	corpus.versions = BuildVersionInfos(append(labels, extras...))

	for _, info := range corpus.versions {
		sidebar, err := LoadSidebar(s.fsys, info.Label)
		if err != nil {
			return nil, err
		}
		if sidebar != nil {
			corpus.sidebars[info.Label] = sidebar
		}
	}

	s.logger.Info("registry.load.completed",
		"versions", len(corpus.versions),
		"pages", corpus.PageCount(),
		"duplicates", len(corpus.duplicates),
	)

	return corpus, nil
}

// EffectiveOriginalID resolves the canonical unversioned slug for a page.
// Current-tree pages are canonical by definition; snapshot pages declare
// original_id, falling back to the slug recovered from their versioned id.
func EffectiveOriginalID(doc *docs.Document) string {
	if doc == nil {
		return ""
	}
	if original := strings.TrimSpace(doc.FrontMatter.OriginalID); original != "" {
		return original
	}
	id := strings.TrimSpace(doc.FrontMatter.ID)
	if id == "" {
		return ""
	}
	if docs.IsCurrent(doc.Version) {
		return id
	}
	if slug, err := docs.SlugForVersion(id, doc.Version); err == nil {
		return slug
	}
	return ""
}

// Versions returns the ordered version list, current tree first.
func (c *Corpus) Versions() []docs.VersionInfo {
	return append([]docs.VersionInfo(nil), c.versions...)
}

// HasVersion reports whether the label names a known version.
func (c *Corpus) HasVersion(version string) bool {
	if docs.IsCurrent(version) {
		version = docs.CurrentVersion
	}
	_, ok := c.pages[version]
	if ok {
		return true
	}
	for _, info := range c.versions {
		if info.Label == version {
			return true
		}
	}
	return false
}

// Pages returns the pages of a version sorted by id.
func (c *Corpus) Pages(version string) []*docs.Document {
	if docs.IsCurrent(version) {
		version = docs.CurrentVersion
	}
	byID := c.pages[version]
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	pages := make([]*docs.Document, 0, len(ids))
	for _, id := range ids {
		pages = append(pages, byID[id])
	}
	return pages
}

// Get looks a page up by version and id.
func (c *Corpus) Get(version, id string) (*docs.Document, error) {
	if docs.IsCurrent(version) {
		version = docs.CurrentVersion
	}
	byID, ok := c.pages[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s", docs.ErrVersionUnknown, version)
	}
	doc, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s@%s", docs.ErrPageNotFound, id, version)
	}
	return doc, nil
}

// Resolve looks a page up by its canonical slug within a version.
func (c *Corpus) Resolve(originalID, version string) (*docs.Document, error) {
	if docs.IsCurrent(version) {
		version = docs.CurrentVersion
	}
	if _, ok := c.pages[version]; !ok {
		return nil, fmt.Errorf("%w: %s", docs.ErrVersionUnknown, version)
	}
	if doc, ok := c.byOriginal[version][originalID]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s@%s", docs.ErrPageNotFound, originalID, version)
}

// Latest returns the page for the newest version carrying the canonical slug,
// preferring the current tree.
func (c *Corpus) Latest(originalID string) (*docs.Document, error) {
	for _, info := range c.versions {
		if doc, ok := c.byOriginal[info.Label][originalID]; ok {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", docs.ErrPageNotFound, originalID)
}

// Sidebar returns the parsed sidebar for a version, or nil when none exists.
func (c *Corpus) Sidebar(version string) Sidebar {
	if docs.IsCurrent(version) {
		version = docs.CurrentVersion
	}
	return c.sidebars[version]
}

// Duplicates lists id collisions found while loading.
func (c *Corpus) Duplicates() []Duplicate {
	return append([]Duplicate(nil), c.duplicates...)
}

// OriginalIDs returns the sorted union of canonical slugs across all versions.
func (c *Corpus) OriginalIDs() []string {
	seen := map[string]struct{}{}
	for _, byOriginal := range c.byOriginal {
		for original := range byOriginal {
			seen[original] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for original := range seen {
		ids = append(ids, original)
	}
	sort.Strings(ids)
	return ids
}

// PageCount totals pages across every version.
func (c *Corpus) PageCount() int {
	total := 0
	for _, byID := range c.pages {
		total += len(byID)
	}
	return total
}
