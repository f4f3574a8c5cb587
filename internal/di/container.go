package di

import (
	"context"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-docsite/docs"
	"github.com/goliatone/go-docsite/internal/commands"
	docscmd "github.com/goliatone/go-docsite/internal/commands/docs"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/index"
	"github.com/goliatone/go-docsite/internal/lint"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/logging/console"
	"github.com/goliatone/go-docsite/internal/logging/gologger"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/internal/registry"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/goliatone/go-docsite/pkg/storage"
)

// Container wires module dependencies from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	store          storage.ArtifactStore
	bunDB          *bun.DB
	cacheService   cache.CacheService
	keySerializer  cache.KeySerializer

	markdownSvc  *markdown.Service
	registrySvc  *registry.Service
	lintSvc      *lint.Service
	generatorSvc generator.Service
	indexSvc     index.Service
	recordRepo   *docs.BunRecordRepository
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithArtifactStore overrides the filesystem-backed artifact store.
func WithArtifactStore(store storage.ArtifactStore) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithDB injects an existing bun handle for the doc index.
func WithDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache enables repository caching for index lookups.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// NewContainer validates the configuration and wires every enabled service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	if err := c.configureRegistry(); err != nil {
		return nil, err
	}
	if err := c.configureLint(); err != nil {
		return nil, err
	}
	if err := c.configureGenerator(); err != nil {
		return nil, err
	}
	if err := c.configureIndex(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "", "console":
		var minLevel *console.Level
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			minLevel = &level
		}
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: minLevel})
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		return fmt.Errorf("di: unknown logging provider %q", logCfg.Provider)
	}
	return nil
}

func (c *Container) configureMarkdown() error {
	svc, err := markdown.NewService(markdown.Config{
		BasePath:  c.Config.Docs.Root,
		Pattern:   c.Config.Docs.Pattern,
		Recursive: c.Config.Docs.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: c.Config.Markdown.Extensions,
			Sanitize:   c.Config.Markdown.Sanitize,
			HardWraps:  c.Config.Markdown.HardWraps,
			SafeMode:   c.Config.Markdown.SafeMode,
		},
	}, nil)
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureRegistry() error {
	svc, err := registry.NewService(registry.Config{
		Root:      c.Config.Docs.Root,
		Pattern:   c.Config.Docs.Pattern,
		Recursive: c.Config.Docs.Recursive,
	}, logging.RegistryLogger(c.loggerProvider))
	if err != nil {
		return err
	}
	c.registrySvc = svc
	return nil
}

func (c *Container) configureLint() error {
	if !c.Config.Features.Lint {
		return nil
	}
	svc, err := lint.NewService(lint.Config{
		FailOnWarning:     c.Config.Lint.FailOnWarning,
		DisabledRules:     c.Config.Lint.DisabledRules,
		SeverityOverrides: c.Config.Lint.SeverityOverrides,
	}, logging.LintLogger(c.loggerProvider))
	if err != nil {
		return err
	}
	c.lintSvc = svc
	return nil
}

func (c *Container) configureGenerator() error {
	if !c.Config.Features.Generator || !c.Config.Generator.Enabled {
		c.generatorSvc = generator.NewDisabledService()
		return nil
	}

	if c.store == nil {
		store, err := storage.NewOSStore(c.Config.Generator.OutputDir)
		if err != nil {
			return err
		}
		c.store = store
	}

	var theming *generator.ThemingConfig
	if c.Config.Features.Theming {
		theming = &generator.ThemingConfig{
			Path:    c.Config.Theme.Path,
			Name:    c.Config.Theme.Name,
			Variant: c.Config.Theme.Variant,
		}
	}

	routes := generator.RoutesConfig{
		Group:          c.Config.Navigation.Group,
		CurrentRoute:   c.Config.Navigation.CurrentRoute,
		VersionedRoute: c.Config.Navigation.VersionedRoute,
		BaseURL:        c.Config.Site.BaseURL,
	}
	if c.Config.Navigation.RouteConfig != nil {
		routes.Manager = urlkit.NewRouteManager(c.Config.Navigation.RouteConfig)
	}

	svc, err := generator.NewService(generator.Config{
		// The artifact store is rooted at the output directory, so generated
		// paths stay relative to it.
		OutputDir:       "",
		BaseURL:         c.Config.Site.BaseURL,
		SiteTitle:       c.Config.Site.Title,
		Tagline:         c.Config.Site.Tagline,
		CurrentLabel:    c.Config.Docs.CurrentLabel,
		CleanBuild:      c.Config.Generator.CleanBuild,
		Incremental:     c.Config.Generator.Incremental,
		CopyAssets:      c.Config.Generator.CopyAssets,
		GenerateSitemap: c.Config.Generator.GenerateSitemap,
		GenerateRobots:  c.Config.Generator.GenerateRobots,
		Workers:         c.Config.Generator.Workers,
		RenderTimeout:   c.Config.Generator.RenderTimeout,
	}, generator.Dependencies{
		Registry: c.registrySvc,
		Markdown: c.markdownSvc,
		Store:    c.store,
		Routes:   routes,
		Theming:  theming,
		Logger:   logging.GeneratorLogger(c.loggerProvider),
	})
	if err != nil {
		return err
	}
	c.generatorSvc = svc
	return nil
}

func (c *Container) configureIndex() error {
	if !c.Config.Features.Index || !c.Config.Index.Enabled {
		c.indexSvc = index.NewDisabledService()
		return nil
	}

	if c.bunDB == nil {
		db, err := index.OpenDB(index.StoreConfig{
			Driver: c.Config.Index.Driver,
			DSN:    c.Config.Index.DSN,
		})
		if err != nil {
			return err
		}
		c.bunDB = db
	}

	c.recordRepo = docs.NewBunRecordRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	svc, err := index.NewService(c.registrySvc, c.recordRepo, logging.IndexLogger(c.loggerProvider))
	if err != nil {
		return err
	}
	c.indexSvc = svc
	return nil
}

// EnsureIndexSchema creates the index tables when they do not exist yet. It
// is a no-op when the index feature is disabled.
func (c *Container) EnsureIndexSchema(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	return index.EnsureSchema(ctx, c.bunDB)
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the root module logger.
func (c *Container) Logger() interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, "")
}

// MarkdownService exposes the markdown loader/renderer.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// RegistryService exposes the versioned page registry.
func (c *Container) RegistryService() *registry.Service {
	return c.registrySvc
}

// LintService exposes the hygiene linter, nil when the feature is disabled.
func (c *Container) LintService() *lint.Service {
	return c.lintSvc
}

// GeneratorService exposes the static site generator.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// IndexService exposes the persistent doc index.
func (c *Container) IndexService() index.Service {
	return c.indexSvc
}

// RecordRepository exposes the doc index repository, nil when index is disabled.
func (c *Container) RecordRepository() *docs.BunRecordRepository {
	return c.recordRepo
}

// DB exposes the bun handle backing the index, nil when index is disabled.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// ArtifactStore exposes the store generated sites are written to.
func (c *Container) ArtifactStore() storage.ArtifactStore {
	return c.store
}

// FeatureGates builds the command-layer gates from configuration.
func (c *Container) FeatureGates() docscmd.FeatureGates {
	cfg := c.Config
	return docscmd.FeatureGates{
		LintEnabled:      func() bool { return cfg.Features.Lint },
		GeneratorEnabled: func() bool { return cfg.Features.Generator && cfg.Generator.Enabled },
		IndexEnabled:     func() bool { return cfg.Features.Index && cfg.Index.Enabled },
	}
}

// CommandTimeoutOptions translates the Commands config into handler options.
func CommandTimeoutOptions[T command.Message](cfg runtimeconfig.CommandsConfig) []commands.HandlerOption[T] {
	if cfg.Timeout <= 0 {
		return nil
	}
	return []commands.HandlerOption[T]{commands.WithTimeout[T](cfg.Timeout)}
}
