package docscmd

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docsite/docs"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/index"
	"github.com/goliatone/go-docsite/internal/lint"
	"github.com/goliatone/go-docsite/internal/registry"
)

func boolPtr(v bool) *bool { return &v }

func corpusRegistry(t *testing.T, files map[string]string) *registry.Service {
	t.Helper()
	fsys := fstest.MapFS{}
	for path, content := range files {
		fsys[path] = &fstest.MapFile{Data: []byte(content)}
	}
	return registry.NewServiceWithFS(fsys, registry.Config{Recursive: true}, nil)
}

func newLinter(t *testing.T, cfg lint.Config) *lint.Service {
	t.Helper()
	svc, err := lint.NewService(cfg, nil)
	if err != nil {
		t.Fatalf("lint.NewService: %v", err)
	}
	return svc
}

func cleanCorpus() map[string]string {
	return map[string]string{
		"sidebars.json": `{"docs": {"Basics": ["overview", "extra"]}}`,
		"overview.md":   "---\ntitle: Overview\nid: overview\n---\n\n# Overview\n",
		"extra.md":      "---\ntitle: Extra\nid: extra\n---\n\n# Extra\n",
	}
}

func warningCorpus() map[string]string {
	// extra.md is listed in no sidebar, which lint grades as a warning.
	return map[string]string{
		"sidebars.json": `{"docs": {"Basics": ["overview"]}}`,
		"overview.md":   "---\ntitle: Overview\nid: overview\n---\n\n# Overview\n",
		"extra.md":      "---\ntitle: Extra\nid: extra\n---\n\n# Extra\n",
	}
}

func errorCorpus() map[string]string {
	return map[string]string{
		"overview.md": "# No front matter here\n",
	}
}

func TestLintCorpusHandlerPasses(t *testing.T) {
	var seen *lint.Report
	handler := NewLintCorpusHandler(
		corpusRegistry(t, cleanCorpus()),
		newLinter(t, lint.Config{}),
		nil,
		FeatureGates{},
		func(report *lint.Report) { seen = report },
	)

	if err := handler.Execute(context.Background(), LintCorpusCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if seen == nil {
		t.Fatalf("expected report sink to receive the report")
	}
	if seen.Errors() != 0 || seen.Warnings() != 0 {
		t.Fatalf("expected clean report, got %d errors %d warnings", seen.Errors(), seen.Warnings())
	}
}

func TestLintCorpusHandlerFailsOnErrors(t *testing.T) {
	handler := NewLintCorpusHandler(
		corpusRegistry(t, errorCorpus()),
		newLinter(t, lint.Config{}),
		nil,
		FeatureGates{},
		nil,
	)

	err := handler.Execute(context.Background(), LintCorpusCommand{})
	if !errors.Is(err, ErrLintFailed) {
		t.Fatalf("expected ErrLintFailed, got %v", err)
	}
}

func TestLintCorpusHandlerFailOnWarningOverride(t *testing.T) {
	reg := corpusRegistry(t, warningCorpus())
	linter := newLinter(t, lint.Config{})

	handler := NewLintCorpusHandler(reg, linter, nil, FeatureGates{}, nil)

	// Warnings pass by default.
	if err := handler.Execute(context.Background(), LintCorpusCommand{}); err != nil {
		t.Fatalf("warnings should not fail the run: %v", err)
	}

	// The per-run override promotes them to failures.
	err := handler.Execute(context.Background(), LintCorpusCommand{FailOnWarning: boolPtr(true)})
	if !errors.Is(err, ErrLintFailed) {
		t.Fatalf("expected ErrLintFailed with override, got %v", err)
	}

	// And can relax a strict default.
	strict := NewLintCorpusHandler(reg, newLinter(t, lint.Config{FailOnWarning: true}), nil, FeatureGates{}, nil)
	if err := strict.Execute(context.Background(), LintCorpusCommand{FailOnWarning: boolPtr(false)}); err != nil {
		t.Fatalf("override should relax strict default: %v", err)
	}
}

func TestLintCorpusHandlerFeatureDisabled(t *testing.T) {
	handler := NewLintCorpusHandler(
		corpusRegistry(t, cleanCorpus()),
		newLinter(t, lint.Config{}),
		nil,
		FeatureGates{LintEnabled: func() bool { return false }},
		nil,
	)

	err := handler.Execute(context.Background(), LintCorpusCommand{})
	if !errors.Is(err, ErrLintFeatureDisabled) {
		t.Fatalf("expected ErrLintFeatureDisabled, got %v", err)
	}
}

type stubGenerator struct {
	opts   generator.BuildOptions
	result *generator.BuildResult
	err    error
}

func (g *stubGenerator) Build(_ context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	g.opts = opts
	return g.result, g.err
}

func (g *stubGenerator) Clean(context.Context) error { return nil }

func TestBuildSiteHandler(t *testing.T) {
	gen := &stubGenerator{result: &generator.BuildResult{PagesBuilt: 4}}

	var seen *generator.BuildResult
	handler := NewBuildSiteHandler(gen, nil, FeatureGates{}, func(result *generator.BuildResult) {
		seen = result
	})

	msg := BuildSiteCommand{Versions: []string{"1.0.0"}, DryRun: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !gen.opts.DryRun || len(gen.opts.Versions) != 1 || gen.opts.Versions[0] != "1.0.0" {
		t.Fatalf("unexpected build options %#v", gen.opts)
	}
	if seen == nil || seen.PagesBuilt != 4 {
		t.Fatalf("result sink did not receive the build result")
	}
}

func TestBuildSiteHandlerSinkRunsOnFailure(t *testing.T) {
	gen := &stubGenerator{
		result: &generator.BuildResult{PagesBuilt: 2, Errors: []error{errors.New("render failed")}},
		err:    errors.New("build completed with errors"),
	}

	var seen *generator.BuildResult
	handler := NewBuildSiteHandler(gen, nil, FeatureGates{}, func(result *generator.BuildResult) {
		seen = result
	})

	if err := handler.Execute(context.Background(), BuildSiteCommand{}); err == nil {
		t.Fatalf("expected build error to propagate")
	}
	if seen == nil || seen.PagesBuilt != 2 {
		t.Fatalf("sink must receive partial results on failure")
	}
}

func TestBuildSiteHandlerFeatureDisabled(t *testing.T) {
	handler := NewBuildSiteHandler(&stubGenerator{}, nil, FeatureGates{
		GeneratorEnabled: func() bool { return false },
	}, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, ErrGeneratorFeatureDisabled) {
		t.Fatalf("expected ErrGeneratorFeatureDisabled, got %v", err)
	}
}

func TestBuildSiteCommandValidate(t *testing.T) {
	if err := (BuildSiteCommand{Versions: []string{"1.0.0", "2.0.0"}}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (BuildSiteCommand{Versions: []string{" "}}).Validate(); err == nil {
		t.Fatalf("expected blank version label to be rejected")
	}
}

type stubIndex struct {
	result *index.SyncResult
	err    error
	calls  int
}

func (s *stubIndex) Sync(context.Context) (*index.SyncResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubIndex) Search(context.Context, string, string) ([]*docs.Record, error) {
	return nil, nil
}

func TestSyncIndexHandler(t *testing.T) {
	idx := &stubIndex{result: &index.SyncResult{Indexed: 5, Pruned: 1}}
	handler := NewSyncIndexHandler(idx, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), SyncIndexCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if idx.calls != 1 {
		t.Fatalf("expected one sync call, got %d", idx.calls)
	}
}

func TestSyncIndexHandlerPropagatesErrors(t *testing.T) {
	idx := &stubIndex{err: errors.New("database unavailable")}
	handler := NewSyncIndexHandler(idx, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), SyncIndexCommand{}); err == nil {
		t.Fatalf("expected sync error to propagate")
	}
}

func TestSyncIndexHandlerFeatureDisabled(t *testing.T) {
	handler := NewSyncIndexHandler(&stubIndex{}, nil, FeatureGates{
		IndexEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), SyncIndexCommand{})
	if !errors.Is(err, ErrIndexFeatureDisabled) {
		t.Fatalf("expected ErrIndexFeatureDisabled, got %v", err)
	}
}
