package generator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// ThemingConfig points the generator at a go-theme directory.
type ThemingConfig struct {
	// Path is the theme directory holding theme.json and assets.
	Path string
	// Name selects the theme to register; defaults to the manifest name.
	Name string
	// Variant selects a manifest variant, e.g. "dark".
	Variant string
}

// themePipeline loads a theme manifest, selects the active variant, and
// exposes the asset files the build copies into the output tree.
type themePipeline struct {
	fsys      fs.FS
	selection *gotheme.Selection
}

func newThemePipeline(cfg ThemingConfig) (*themePipeline, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("generator: theme path required")
	}
	cleaned := filepath.Clean(strings.TrimSpace(cfg.Path))
	return newThemePipelineFS(os.DirFS(cleaned), cfg)
}

func newThemePipelineFS(fsys fs.FS, cfg ThemingConfig) (*themePipeline, error) {
	manifest, err := gotheme.LoadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("generator: load theme manifest from %s: %w", cfg.Path, err)
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("generator: register theme manifest: %w", err)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = manifest.Name
	}

	selector := gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   manifest.Name,
		DefaultVariant: strings.TrimSpace(cfg.Variant),
	}
	selection, err := selector.Select(name, strings.TrimSpace(cfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("generator: select theme %s: %w", name, err)
	}

	return &themePipeline{
		fsys:      fsys,
		selection: selection,
	}, nil
}

func (p *themePipeline) name() string {
	if p == nil || p.selection == nil || p.selection.Manifest == nil {
		return ""
	}
	return p.selection.Manifest.Name
}

func (p *themePipeline) variant() string {
	if p == nil || p.selection == nil {
		return ""
	}
	return p.selection.Variant
}

// assetFiles lists theme asset paths, variant entries overriding base ones.
func (p *themePipeline) assetFiles() []string {
	if p == nil || p.selection == nil || p.selection.Manifest == nil {
		return nil
	}
	manifest := p.selection.Manifest

	files := manifest.Assets.Files
	if variant := strings.TrimSpace(p.selection.Variant); variant != "" {
		if v, ok := manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(files)+len(v.Assets.Files))
			for key, value := range files {
				merged[key] = value
			}
			for key, value := range v.Assets.Files {
				merged[key] = value
			}
			files = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range files {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	sort.Strings(out)
	return out
}

// readAsset returns the contents of a theme asset file.
func (p *themePipeline) readAsset(asset string) ([]byte, error) {
	if p == nil || p.fsys == nil {
		return nil, fmt.Errorf("generator: theme filesystem not configured")
	}
	data, err := fs.ReadFile(p.fsys, filepath.ToSlash(strings.TrimPrefix(asset, "/")))
	if err != nil {
		return nil, fmt.Errorf("generator: read theme asset %s: %w", asset, err)
	}
	return data, nil
}

// layoutSource returns the theme's layout template when the manifest declares
// one under templates/layout.html; the built-in layout is used otherwise.
func (p *themePipeline) layoutSource() ([]byte, bool) {
	if p == nil || p.fsys == nil {
		return nil, false
	}
	data, err := fs.ReadFile(p.fsys, "templates/layout.html")
	if err != nil {
		return nil, false
	}
	return data, true
}
