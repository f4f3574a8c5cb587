package docsite

import (
	"github.com/goliatone/go-docsite/docs"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/index"
	"github.com/goliatone/go-docsite/internal/lint"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/internal/registry"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/goliatone/go-docsite/pkg/storage"
)

// RegistryService exports the versioned page registry.
type RegistryService = *registry.Service

// Corpus exports the loaded corpus view.
type Corpus = registry.Corpus

// LintService exports the documentation-hygiene linter.
type LintService = *lint.Service

// LintReport exports the aggregated lint findings.
type LintReport = lint.Report

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports the generator build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build summary.
type BuildResult = generator.BuildResult

// IndexService exports the persistent doc-index contract.
type IndexService = index.Service

// MarkdownService exports the markdown loader/renderer.
type MarkdownService = *markdown.Service

// Document exports the parsed documentation page DTO.
type Document = interfaces.Document

// FrontMatter exports the page front-matter contract.
type FrontMatter = interfaces.FrontMatter

// Record exports the persisted doc-index row.
type Record = docs.Record

// ArtifactStore exports the generated-artifact storage contract.
type ArtifactStore = storage.ArtifactStore

// Module is the top level docsite runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a docsite module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Registry returns the configured page registry.
func (m *Module) Registry() RegistryService {
	return m.container.RegistryService()
}

// Linter returns the configured hygiene linter, nil when the feature is
// disabled.
func (m *Module) Linter() LintService {
	return m.container.LintService()
}

// Generator returns the configured static site generator.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Index returns the configured persistent doc index.
func (m *Module) Index() IndexService {
	return m.container.IndexService()
}

// Markdown returns the configured markdown service.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.container.Logger()
}
