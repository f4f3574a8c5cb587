package bootstrap

import (
	"fmt"
	"strings"
	"time"

	docsite "github.com/goliatone/go-docsite"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Options captures configuration for docs CLI bootstraps.
type Options struct {
	DocsRoot     string
	Pattern      string
	Recursive    bool
	CurrentLabel string

	SiteTitle string
	Tagline   string
	BaseURL   string

	FailOnWarning *bool

	// CommandTimeout bounds each command execution; zero keeps the handler
	// default.
	CommandTimeout time.Duration

	GeneratorEnabled bool
	OutputDir        string
	CleanBuild       *bool
	Incremental      *bool
	CopyAssets       *bool
	GenerateSitemap  *bool
	GenerateRobots   *bool
	Workers          int
	RenderTimeout    time.Duration

	ThemePath    string
	ThemeName    string
	ThemeVariant string

	IndexEnabled bool
	IndexDriver  string
	IndexDSN     string

	LogProvider    string
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the docsite module and the logger configured for CLI output.
type Module struct {
	Module *docsite.Module
	Logger interfaces.Logger
}

// BuildModule constructs a docsite module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := docsite.DefaultConfig()
	cfg.Features.Logger = true

	if trimmed := strings.TrimSpace(opts.DocsRoot); trimmed != "" {
		cfg.Docs.Root = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Docs.Pattern = trimmed
	}
	cfg.Docs.Recursive = opts.Recursive
	if trimmed := strings.TrimSpace(opts.CurrentLabel); trimmed != "" {
		cfg.Docs.CurrentLabel = trimmed
	}

	if trimmed := strings.TrimSpace(opts.SiteTitle); trimmed != "" {
		cfg.Site.Title = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Tagline); trimmed != "" {
		cfg.Site.Tagline = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Site.BaseURL = trimmed
	}

	if opts.FailOnWarning != nil {
		cfg.Lint.FailOnWarning = *opts.FailOnWarning
	}

	if opts.CommandTimeout > 0 {
		cfg.Commands.Timeout = opts.CommandTimeout
	}

	if opts.GeneratorEnabled {
		cfg.Features.Generator = true
		cfg.Generator.Enabled = true
		if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
			cfg.Generator.OutputDir = trimmed
		}
		if opts.CleanBuild != nil {
			cfg.Generator.CleanBuild = *opts.CleanBuild
		}
		if opts.Incremental != nil {
			cfg.Generator.Incremental = *opts.Incremental
		}
		if opts.CopyAssets != nil {
			cfg.Generator.CopyAssets = *opts.CopyAssets
		}
		if opts.GenerateSitemap != nil {
			cfg.Generator.GenerateSitemap = *opts.GenerateSitemap
		}
		if opts.GenerateRobots != nil {
			cfg.Generator.GenerateRobots = *opts.GenerateRobots
		}
		if opts.Workers > 0 {
			cfg.Generator.Workers = opts.Workers
		}
		if opts.RenderTimeout > 0 {
			cfg.Generator.RenderTimeout = opts.RenderTimeout
		}
	}

	if trimmed := strings.TrimSpace(opts.ThemePath); trimmed != "" {
		cfg.Features.Theming = true
		cfg.Theme.Path = trimmed
		cfg.Theme.Name = strings.TrimSpace(opts.ThemeName)
		cfg.Theme.Variant = strings.TrimSpace(opts.ThemeVariant)
	}

	if opts.IndexEnabled {
		cfg.Features.Index = true
		cfg.Index.Enabled = true
		if trimmed := strings.TrimSpace(opts.IndexDriver); trimmed != "" {
			cfg.Index.Driver = trimmed
		}
		cfg.Index.DSN = strings.TrimSpace(opts.IndexDSN)
	}

	if trimmed := strings.TrimSpace(opts.LogProvider); trimmed != "" {
		cfg.Logging.Provider = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := docsite.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docsite module: %w", err)
	}

	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "docsite.cli")

	return &Module{
		Module: module,
		Logger: logger,
	}, nil
}

// SplitVersions parses a comma separated version list into a trimmed slice.
func SplitVersions(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	versions := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			versions = append(versions, trimmed)
		}
	}
	return versions
}

// BoolFlag returns a pointer to the flag value when it was set on the command
// line, nil otherwise, so defaults from configuration stay in force.
func BoolFlag(set bool, value bool) *bool {
	if !set {
		return nil
	}
	return &value
}
