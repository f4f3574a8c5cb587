package docscmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-docsite/internal/commands"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/index"
	"github.com/goliatone/go-docsite/internal/lint"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/registry"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

const (
	lintOperation  = "docs.lint_corpus"
	buildOperation = "docs.build_site"
	syncOperation  = "docs.sync_index"
)

var (
	// ErrLintFeatureDisabled is returned when the lint feature flag is off.
	ErrLintFeatureDisabled = errors.New("docs command: lint feature disabled")
	// ErrGeneratorFeatureDisabled is returned when the generator feature flag is off.
	ErrGeneratorFeatureDisabled = errors.New("docs command: generator feature disabled")
	// ErrIndexFeatureDisabled is returned when the index feature flag is off.
	ErrIndexFeatureDisabled = errors.New("docs command: index feature disabled")
	// ErrLintFailed is returned when a lint run records failing diagnostics.
	ErrLintFailed = errors.New("docs command: lint failed")
)

var (
	_ command.Commander[LintCorpusCommand] = (*LintCorpusHandler)(nil)
	_ command.Commander[BuildSiteCommand]  = (*BuildSiteHandler)(nil)
	_ command.Commander[SyncIndexCommand]  = (*SyncIndexHandler)(nil)
)

// LintCorpusHandler loads the corpus and runs the hygiene rules over it.
type LintCorpusHandler struct {
	inner *commands.Handler[LintCorpusCommand]
}

// NewLintCorpusHandler creates a handler bound to the supplied registry and
// linter. When reportSink is non-nil it receives the report before the
// pass/fail decision, letting callers print diagnostics.
func NewLintCorpusHandler(
	reg *registry.Service,
	linter *lint.Service,
	logger interfaces.Logger,
	gates FeatureGates,
	reportSink func(*lint.Report),
	opts ...commands.HandlerOption[LintCorpusCommand],
) *LintCorpusHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg LintCorpusCommand) error {
		if !gates.lintEnabled() {
			return ErrLintFeatureDisabled
		}

		corpus, err := reg.Load(ctx)
		if err != nil {
			return err
		}
		report, err := linter.Run(ctx, corpus)
		if err != nil {
			return err
		}
		if reportSink != nil {
			reportSink(report)
		}

		failOnWarning := linter.FailOnWarning()
		if msg.FailOnWarning != nil {
			failOnWarning = *msg.FailOnWarning
		}

		logging.WithFields(baseLogger, map[string]any{
			"errors":   report.Errors(),
			"warnings": report.Warnings(),
		}).Info("docs.command.lint_corpus.completed")

		if report.Failed(failOnWarning) {
			return fmt.Errorf("%w: %d errors, %d warnings", ErrLintFailed, report.Errors(), report.Warnings())
		}
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[LintCorpusCommand]{
		commands.WithLogger[LintCorpusCommand](baseLogger),
		commands.WithOperation[LintCorpusCommand](lintOperation),
	}, opts...)

	return &LintCorpusHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *LintCorpusHandler) Execute(ctx context.Context, msg LintCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildSiteHandler triggers static-site builds through the generator service.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler creates a handler bound to the supplied generator. When
// resultSink is non-nil it receives the build result even on partial failure.
func NewBuildSiteHandler(
	gen generator.Service,
	logger interfaces.Logger,
	gates FeatureGates,
	resultSink func(*generator.BuildResult),
	opts ...commands.HandlerOption[BuildSiteCommand],
) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if !gates.generatorEnabled() {
			return ErrGeneratorFeatureDisabled
		}

		result, err := gen.Build(ctx, generator.BuildOptions{
			Versions: msg.Versions,
			DryRun:   msg.DryRun,
		})
		if result != nil && resultSink != nil {
			resultSink(result)
		}
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"pages_built":   result.PagesBuilt,
				"pages_skipped": result.PagesSkipped,
				"assets_built":  result.AssetsBuilt,
				"dry_run":       msg.DryRun,
			}).Info("docs.command.build_site.completed")
		}
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Versions) > 0 {
				fields["versions"] = msg.Versions
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}, opts...)

	return &BuildSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncIndexHandler pushes the corpus into the persistent doc index.
type SyncIndexHandler struct {
	inner *commands.Handler[SyncIndexCommand]
}

// NewSyncIndexHandler creates a handler bound to the supplied index service.
func NewSyncIndexHandler(
	idx index.Service,
	logger interfaces.Logger,
	gates FeatureGates,
	opts ...commands.HandlerOption[SyncIndexCommand],
) *SyncIndexHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncIndexCommand) error {
		if !gates.indexEnabled() {
			return ErrIndexFeatureDisabled
		}

		result, err := idx.Sync(ctx)
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"indexed": result.Indexed,
				"pruned":  result.Pruned,
			}).Info("docs.command.sync_index.completed")
		}
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[SyncIndexCommand]{
		commands.WithLogger[SyncIndexCommand](baseLogger),
		commands.WithOperation[SyncIndexCommand](syncOperation),
	}, opts...)

	return &SyncIndexHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *SyncIndexHandler) Execute(ctx context.Context, msg SyncIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}
