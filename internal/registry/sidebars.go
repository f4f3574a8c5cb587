package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-docsite/docs"
)

// Sidebar maps sidebar name -> category -> ordered doc ids for one version.
type Sidebar map[string]map[string][]string

// DocIDs returns every doc id referenced by the sidebar, sorted and de-duplicated.
func (s Sidebar) DocIDs() []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, categories := range s {
		for _, entries := range categories {
			for _, id := range entries {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

var (
	sidebarSchemaOnce     sync.Once
	sidebarSchemaCompiled *jsonschema.Schema
	sidebarSchemaErr      error
)

func sidebarValidator() (*jsonschema.Schema, error) {
	sidebarSchemaOnce.Do(func() {
		sidebarSchemaCompiled, sidebarSchemaErr = compileSchema("sidebars.json", sidebarsSchema)
	})
	return sidebarSchemaCompiled, sidebarSchemaErr
}

// LoadSidebar parses and validates the sidebar file for a version. Missing
// sidebar files are tolerated: lint reports orphaned pages only when a sidebar
// exists to anchor them.
func LoadSidebar(fsys fs.FS, version string) (Sidebar, error) {
	file := docs.SidebarFile(version)
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("registry: read %s: %w", file, err)
	}

	schema, err := sidebarValidator()
	if err != nil {
		return nil, fmt.Errorf("registry: compile sidebar schema: %w", err)
	}

	decoded, err := validateAgainst(schema, file, data, ErrSidebarFileInvalid)
	if err != nil {
		return nil, err
	}

	root, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected object", ErrSidebarFileInvalid, file)
	}

	sidebar := Sidebar{}
	for name, rawCategories := range root {
		categories, ok := rawCategories.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: sidebar %q must be an object", ErrSidebarFileInvalid, file, name)
		}
		parsed := map[string][]string{}
		for category, rawEntries := range categories {
			entries, ok := rawEntries.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s: category %q must be an array", ErrSidebarFileInvalid, file, category)
			}
			ids := make([]string, 0, len(entries))
			for _, entry := range entries {
				id, ok := entry.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %s: category %q must list doc ids", ErrSidebarFileInvalid, file, category)
				}
				ids = append(ids, id)
			}
			parsed[category] = ids
		}
		sidebar[name] = parsed
	}
	return sidebar, nil
}
