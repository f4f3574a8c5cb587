package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrDocsRootRequired indicates the corpus root directory is missing.
var ErrDocsRootRequired = errors.New("docsite config: docs root directory is required")

// ErrGeneratorFeatureRequired ensures generator settings stay behind the feature flag.
var ErrGeneratorFeatureRequired = errors.New("docsite config: generator feature must be enabled to configure the generator")

// ErrGeneratorOutputDirRequired indicates a generator build has nowhere to write.
var ErrGeneratorOutputDirRequired = errors.New("docsite config: generator output directory is required when generator is enabled")

// ErrIndexFeatureRequired ensures index settings stay behind the feature flag.
var ErrIndexFeatureRequired = errors.New("docsite config: index feature must be enabled to configure the index store")

// ErrIndexDSNRequired indicates the index store has no database target.
var ErrIndexDSNRequired = errors.New("docsite config: index DSN is required when index is enabled")

var ErrIndexDriverUnknown = errors.New("docsite config: index driver is invalid")
var ErrThemePathRequired = errors.New("docsite config: theme path is required when theming is enabled")
var ErrLintSeverityInvalid = errors.New("docsite config: lint severity override is invalid")
var ErrLoggingProviderRequired = errors.New("docsite config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("docsite config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("docsite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docsite config: logging format is invalid")
var ErrWorkersNegative = errors.New("docsite config: generator workers must be zero or positive")

// Config aggregates feature flags and adapter bindings for the docsite module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Site       SiteConfig
	Docs       DocsConfig
	Markdown   MarkdownParserConfig
	Lint       LintConfig
	Generator  GeneratorConfig
	Index      IndexConfig
	Theme      ThemeConfig
	Navigation NavigationConfig
	Logging    LoggingConfig
	Features   Features
	Commands   CommandsConfig
}

// SiteConfig carries site-wide metadata surfaced to templates and sitemaps.
type SiteConfig struct {
	Title   string
	Tagline string
	BaseURL string
}

// DocsConfig captures where the corpus lives and how files are discovered.
type DocsConfig struct {
	// Root is the directory holding the current docs tree, version-<label>/
	// snapshots, versions.json, and the sidebar files.
	Root string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// CurrentLabel overrides the display label of the working tree (e.g. "next").
	CurrentLabel string
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LintConfig toggles individual hygiene rules and their failure behaviour.
type LintConfig struct {
	// FailOnWarning promotes warnings to build failures.
	FailOnWarning bool
	// DisabledRules lists rule names to skip entirely.
	DisabledRules []string
	// SeverityOverrides maps rule name to "error" or "warning".
	SeverityOverrides map[string]string
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool
	OutputDir       string
	CleanBuild      bool
	Incremental     bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	Workers         int
	// RenderTimeout bounds the render work for a single page; zero disables
	// the per-page deadline.
	RenderTimeout time.Duration
}

// IndexConfig configures the persistent document index.
type IndexConfig struct {
	Enabled bool
	// Driver selects the bun dialect: "sqlite" or "postgres".
	Driver string
	DSN    string
}

// ThemeConfig points the generator at a go-theme directory.
type ThemeConfig struct {
	Path    string
	Name    string
	Variant string
}

// NavigationConfig captures routing configuration for page URL resolution.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	// Group selects the urlkit route group used for doc pages.
	Group string
	// CurrentRoute and VersionedRoute name the routes within the group.
	CurrentRoute   string
	VersionedRoute string
}

// Features toggles module functionality.
type Features struct {
	Lint      bool
	Generator bool
	Index     bool
	Theming   bool
	Logger    bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	// Timeout bounds each command execution; zero keeps the handler default.
	Timeout time.Duration
}

// DefaultConfig returns opinionated defaults for a standalone docs site.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Site: SiteConfig{
			Title: "Documentation",
		},
		Docs: DocsConfig{
			Root:         "docs",
			Pattern:      "*.md",
			Recursive:    true,
			CurrentLabel: "next",
		},
		Markdown: MarkdownParserConfig{
			Extensions: []string{"gfm", "linkify", "tasklist"},
		},
		Lint: LintConfig{
			SeverityOverrides: map[string]string{},
		},
		Generator: GeneratorConfig{
			OutputDir:       "build",
			CleanBuild:      true,
			Incremental:     false,
			CopyAssets:      true,
			GenerateSitemap: true,
			GenerateRobots:  false,
			Workers:         0,
		},
		Index: IndexConfig{
			Driver: "sqlite",
		},
		Features: Features{
			Lint: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Docs.Root) == "" {
		return ErrDocsRootRequired
	}
	if cfg.Generator.Enabled {
		if !cfg.Features.Generator {
			return ErrGeneratorFeatureRequired
		}
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
	}
	if cfg.Generator.Workers < 0 {
		return ErrWorkersNegative
	}
	if cfg.Index.Enabled {
		if !cfg.Features.Index {
			return ErrIndexFeatureRequired
		}
		if strings.TrimSpace(cfg.Index.DSN) == "" {
			return ErrIndexDSNRequired
		}
		if driver := normalizeDriver(cfg.Index.Driver); !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrIndexDriverUnknown, cfg.Index.Driver)
		}
	}
	if cfg.Features.Theming {
		if strings.TrimSpace(cfg.Theme.Path) == "" {
			return ErrThemePathRequired
		}
	}
	for rule, severity := range cfg.Lint.SeverityOverrides {
		if !isSupportedSeverity(severity) {
			return fmt.Errorf("%w: %s=%s", ErrLintSeverityInvalid, rule, severity)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func normalizeDriver(driver string) string {
	return strings.ToLower(strings.TrimSpace(driver))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "", "sqlite", "postgres":
		return true
	default:
		return false
	}
}

func isSupportedSeverity(severity string) bool {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "error", "warning":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
