package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-docsite/docs"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/registry"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/goliatone/go-docsite/pkg/storage"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errRegistryRequired = errors.New("generator: registry service is required")
	errMarkdownRequired = errors.New("generator: markdown service is required")
	errStoreRequired    = errors.New("generator: artifact store is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	// OutputDir is the path inside the artifact store that receives the site.
	// With a store rooted at the output directory it stays empty.
	OutputDir string
	BaseURL   string
	SiteTitle string
	Tagline   string
	// CurrentLabel names the working tree in rendered navigation, e.g. "next".
	CurrentLabel    string
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

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// Versions limits the build to the named versions; empty builds all.
	Versions []string
	DryRun   bool
}

// RenderedPage is a page produced by a build.
type RenderedPage struct {
	Version      string
	ID           string
	Route        string
	Output       string
	HTML         string
	SourceHash   string
	Checksum     string
	LastModified time.Time
	Duration     time.Duration
}

// RenderDiagnostic records the outcome of rendering one page.
type RenderDiagnostic struct {
	Version  string
	ID       string
	Route    string
	Skipped  bool
	Duration time.Duration
	Err      error
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt    int
	PagesSkipped  int
	AssetsBuilt   int
	AssetsSkipped int
	Versions      []string
	Duration      time.Duration
	Rendered      []RenderedPage
	Diagnostics   []RenderDiagnostic
	Errors        []error
	DryRun        bool
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Registry *registry.Service
	Markdown interfaces.MarkdownService
	Store    storage.ArtifactStore
	Routes   RoutesConfig
	Theming  *ThemingConfig
	Logger   interfaces.Logger
}

// NewService wires a generator with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Registry == nil {
		return nil, errRegistryRequired
	}
	if deps.Markdown == nil {
		return nil, errMarkdownRequired
	}
	if deps.Store == nil {
		return nil, errStoreRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	if deps.Routes.BaseURL == "" {
		deps.Routes.BaseURL = cfg.BaseURL
	}
	routes, err := newRouter(deps.Routes)
	if err != nil {
		return nil, err
	}

	var theme *themePipeline
	if deps.Theming != nil {
		theme, err = newThemePipeline(*deps.Theming)
		if err != nil {
			return nil, err
		}
	}

	renderer, err := newPageRenderer(theme)
	if err != nil {
		return nil, err
	}

	return &service{
		cfg:      cfg,
		deps:     deps,
		routes:   routes,
		theme:    theme,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg      Config
	deps     Dependencies
	routes   *router
	theme    *themePipeline
	renderer *pageRenderer
	logger   interfaces.Logger
	now      func() time.Time
}

type disabledService struct{}

type pageJob struct {
	version string
	doc     *docs.Document
	route   string
	output  string
	hash    string
}

type renderOutcome struct {
	diagnostic RenderDiagnostic
	page       RenderedPage
	skipped    bool
	err        error
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	generatedAt := start.UTC()

	corpus, err := s.deps.Registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	versions, err := narrowVersions(corpus.Versions(), opts.Versions)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Versions: make([]string, 0, len(versions)),
		DryRun:   opts.DryRun,
	}
	for _, info := range versions {
		result.Versions = append(result.Versions, info.Label)
	}

	baseDir := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	var errorsSlice []error

	manifest, err := s.loadManifest(ctx)
	if err != nil {
		errorsSlice = append(errorsSlice, err)
		manifest = newBuildManifest()
	}
	if s.cfg.CleanBuild {
		manifest = newBuildManifest()
		if !opts.DryRun {
			if err := s.deps.Store.RemoveAll(ctx, baseDir); err != nil {
				return nil, err
			}
		}
	}

	siteMeta := SiteMetadata{
		Title:        s.cfg.SiteTitle,
		Tagline:      s.cfg.Tagline,
		BaseURL:      strings.TrimRight(s.cfg.BaseURL, "/"),
		CurrentLabel: strings.TrimSpace(s.cfg.CurrentLabel),
		Versions:     corpus.Versions(),
	}
	themeCtx := ThemeContext{}
	if s.theme != nil {
		themeCtx = ThemeContext{
			Name:    s.theme.name(),
			Variant: s.theme.variant(),
			Assets:  s.theme.assetFiles(),
		}
	}

	jobs, routesByVersion, planDiags := s.planPages(versions, corpus, baseDir)
	result.Diagnostics = append(result.Diagnostics, planDiags...)
	for _, diag := range planDiags {
		if diag.Err != nil {
			errorsSlice = append(errorsSlice, diag.Err)
		}
	}

	pageKeys := map[string]struct{}{}
	for _, job := range jobs {
		pageKeys[manifest.pageKey(job.version, job.doc.FrontMatter.ID)] = struct{}{}
	}

	var (
		mu       sync.Mutex
		rendered = make([]RenderedPage, 0, len(jobs))
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			errorsSlice = append(errorsSlice, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	render := func(job pageJob) renderOutcome {
		return s.renderPage(ctx, siteMeta, themeCtx, corpus, routesByVersion, job, manifest, generatedAt)
	}

	if workers := s.effectiveWorkerCount(len(jobs)); workers <= 1 || len(jobs) <= 1 {
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			collect(render(job))
		}
	} else {
		s.renderConcurrently(ctx, jobs, workers, render, collect)
		if err := ctx.Err(); err != nil {
			return result, err
		}
	}

	if opts.DryRun {
		result.Rendered = rendered
		result.Duration = s.now().Sub(start)
		if len(errorsSlice) > 0 {
			result.Errors = append(result.Errors, errorsSlice...)
			return result, errors.Join(errorsSlice...)
		}
		return result, nil
	}

	if err := s.persistPages(ctx, rendered); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	if s.cfg.CopyAssets && s.theme != nil {
		built, skipped, err := s.copyThemeAssets(ctx, manifest, baseDir)
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		}
		result.AssetsBuilt += built
		result.AssetsSkipped += skipped
	}

	if s.cfg.GenerateSitemap {
		sitemapPages := mergeForSitemap(jobs, rendered, manifest)
		content := buildSitemap(siteMeta.BaseURL, sitemapPages, generatedAt)
		if err := s.writeArtifact(ctx, joinOutputPath(baseDir, "sitemap.xml"), content); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateRobots {
		content := buildRobots(siteMeta.BaseURL, s.cfg.GenerateSitemap)
		if err := s.writeArtifact(ctx, joinOutputPath(baseDir, "robots.txt"), content); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if len(errorsSlice) == 0 {
		manifest.GeneratedAt = generatedAt
		for _, page := range rendered {
			manifest.setPage(manifestPage{
				Version:    page.Version,
				ID:         page.ID,
				Route:      page.Route,
				Output:     page.Output,
				SourceHash: page.SourceHash,
				Checksum:   page.Checksum,
				RenderedAt: generatedAt,
			})
		}
		if len(opts.Versions) == 0 {
			// Full builds prune manifest entries for pages that vanished.
			manifest.prunePages(pageKeys)
		}
		if err := s.persistManifest(ctx, manifest, baseDir); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	result.Rendered = rendered
	result.Duration = s.now().Sub(start)

	s.logger.Info("generator.build.completed",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"assets_built", result.AssetsBuilt,
		"duration", result.Duration.String(),
	)

	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		return result, errors.Join(errorsSlice...)
	}
	return result, nil
}

// Clean removes the generated site and its manifest.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	baseDir := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	return s.deps.Store.RemoveAll(ctx, baseDir)
}

func (s *service) planPages(
	versions []docs.VersionInfo,
	corpus *registry.Corpus,
	baseDir string,
) ([]pageJob, map[string]map[string]string, []RenderDiagnostic) {
	var (
		jobs            []pageJob
		diags           []RenderDiagnostic
		routesByVersion = map[string]map[string]string{}
	)
	for _, info := range versions {
		routes := map[string]string{}
		routesByVersion[info.Label] = routes
		for _, doc := range corpus.Pages(info.Label) {
			id := strings.TrimSpace(doc.FrontMatter.ID)
			if id == "" {
				diags = append(diags, RenderDiagnostic{
					Version: info.Label,
					ID:      doc.FilePath,
					Err:     fmt.Errorf("generator: page %s has no id", doc.FilePath),
				})
				continue
			}
			slug, err := docs.SlugForVersion(id, info.Label)
			if err != nil {
				diags = append(diags, RenderDiagnostic{
					Version: info.Label,
					ID:      id,
					Err:     fmt.Errorf("generator: page %s: %w", doc.FilePath, err),
				})
				continue
			}
			route, err := s.routes.routeFor(info.Label, slug)
			if err != nil {
				diags = append(diags, RenderDiagnostic{
					Version: info.Label,
					ID:      id,
					Err:     err,
				})
				continue
			}
			routes[id] = route
			jobs = append(jobs, pageJob{
				version: info.Label,
				doc:     doc,
				route:   route,
				output:  joinOutputPath(baseDir, buildOutputPath(route)),
				hash:    hex.EncodeToString(doc.Checksum),
			})
		}
	}
	return jobs, routesByVersion, diags
}

func (s *service) renderPage(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	corpus *registry.Corpus,
	routesByVersion map[string]map[string]string,
	job pageJob,
	manifest *buildManifest,
	generatedAt time.Time,
) renderOutcome {
	id := strings.TrimSpace(job.doc.FrontMatter.ID)
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			Version: job.version,
			ID:      id,
			Route:   job.route,
		},
	}

	if err := ctx.Err(); err != nil {
		outcome.err = err
		outcome.diagnostic.Err = err
		return outcome
	}

	if s.cfg.Incremental && manifest.shouldSkipPage(job.version, id, job.hash, job.output) {
		outcome.skipped = true
		outcome.diagnostic.Skipped = true
		return outcome
	}

	if s.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RenderTimeout)
		defer cancel()
	}

	start := s.now()
	html, err := s.deps.Markdown.RenderDocument(ctx, job.doc, interfaces.ParseOptions{})
	if err != nil {
		wrapped := fmt.Errorf("generator: render markdown for %s: %w", job.doc.FilePath, err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	templateCtx := TemplateContext{
		Site: siteMeta,
		Page: PageContext{
			Title:        job.doc.FrontMatter.Title,
			ID:           id,
			OriginalID:   registry.EffectiveOriginalID(job.doc),
			Description:  job.doc.FrontMatter.Description,
			Keywords:     job.doc.FrontMatter.Keywords,
			HideTitle:    job.doc.FrontMatter.HideTitle,
			Version:      job.version,
			Route:        job.route,
			Content:      template.HTML(html),
			LastModified: job.doc.LastModified,
		},
		Sidebar: buildNavSections(corpus, job.version, routesByVersion[job.version], id),
		Theme:   themeCtx,
		Build: BuildMetadata{
			GeneratedAt: generatedAt,
			Incremental: s.cfg.Incremental,
		},
	}

	rendered, err := s.renderer.render(templateCtx)
	duration := s.now().Sub(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		outcome.err = err
		outcome.diagnostic.Err = err
		return outcome
	}

	outcome.page = RenderedPage{
		Version:      job.version,
		ID:           id,
		Route:        job.route,
		Output:       job.output,
		HTML:         rendered,
		SourceHash:   job.hash,
		Checksum:     computeHashFromString(rendered),
		LastModified: job.doc.LastModified,
		Duration:     duration,
	}
	return outcome
}

func (s *service) renderConcurrently(
	ctx context.Context,
	jobs []pageJob,
	workers int,
	render func(pageJob) renderOutcome,
	collect func(renderOutcome),
) {
	queue := make(chan pageJob)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				collect(render(job))
			}
		}()
	}

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return
		case queue <- job:
		}
	}
	close(queue)
	wg.Wait()
}

func (s *service) persistPages(ctx context.Context, pages []RenderedPage) error {
	for _, page := range pages {
		if err := s.deps.Store.EnsureDir(ctx, path.Dir(page.Output)); err != nil {
			return err
		}
		if err := s.deps.Store.WriteFile(ctx, page.Output, strings.NewReader(page.HTML)); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) copyThemeAssets(ctx context.Context, manifest *buildManifest, baseDir string) (int, int, error) {
	built, skipped := 0, 0
	for _, asset := range s.theme.assetFiles() {
		data, err := s.theme.readAsset(asset)
		if err != nil {
			return built, skipped, err
		}
		output := joinOutputPath(baseDir, path.Join("assets", asset))
		checksum := computeHash(data)
		if s.cfg.Incremental && manifest.shouldSkipAsset(asset, checksum, output) {
			skipped++
			continue
		}
		if err := s.deps.Store.EnsureDir(ctx, path.Dir(output)); err != nil {
			return built, skipped, err
		}
		if err := s.deps.Store.WriteFile(ctx, output, bytes.NewReader(data)); err != nil {
			return built, skipped, err
		}
		manifest.setAsset(manifestAsset{
			Source:   asset,
			Output:   output,
			Checksum: checksum,
			Size:     int64(len(data)),
			CopiedAt: s.now(),
		})
		built++
	}
	return built, skipped, nil
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	baseDir := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	data, err := s.deps.Store.ReadFile(ctx, joinOutputPath(baseDir, manifestFileName))
	if err != nil {
		if storage.IsNotExist(err) {
			return newBuildManifest(), nil
		}
		return nil, fmt.Errorf("generator: read manifest: %w", err)
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, manifest *buildManifest, baseDir string) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return s.writeArtifact(ctx, joinOutputPath(baseDir, manifestFileName), string(data))
}

func (s *service) writeArtifact(ctx context.Context, target, content string) error {
	if dir := path.Dir(target); dir != "." {
		if err := s.deps.Store.EnsureDir(ctx, dir); err != nil {
			return err
		}
	}
	return s.deps.Store.WriteFile(ctx, target, strings.NewReader(content))
}

func (s *service) effectiveWorkerCount(jobCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobCount > 0 && workers > jobCount {
		return jobCount
	}
	return workers
}

// mergeForSitemap includes pages skipped by incremental builds so the sitemap
// stays complete, resolving their metadata from the manifest.
func mergeForSitemap(jobs []pageJob, rendered []RenderedPage, manifest *buildManifest) []RenderedPage {
	renderedByKey := make(map[string]RenderedPage, len(rendered))
	for _, page := range rendered {
		renderedByKey[manifest.pageKey(page.Version, page.ID)] = page
	}

	merged := make([]RenderedPage, 0, len(jobs))
	for _, job := range jobs {
		id := strings.TrimSpace(job.doc.FrontMatter.ID)
		key := manifest.pageKey(job.version, id)
		if page, ok := renderedByKey[key]; ok {
			merged = append(merged, page)
			continue
		}
		if entry, ok := manifest.lookupPage(job.version, id); ok {
			merged = append(merged, RenderedPage{
				Version:      job.version,
				ID:           id,
				Route:        entry.Route,
				Output:       entry.Output,
				SourceHash:   entry.SourceHash,
				Checksum:     entry.Checksum,
				LastModified: entry.RenderedAt,
			})
			continue
		}
		merged = append(merged, RenderedPage{
			Version:      job.version,
			ID:           id,
			Route:        job.route,
			Output:       job.output,
			LastModified: job.doc.LastModified,
		})
	}
	return merged
}

func narrowVersions(all []docs.VersionInfo, wanted []string) ([]docs.VersionInfo, error) {
	if len(wanted) == 0 {
		return all, nil
	}
	byLabel := make(map[string]docs.VersionInfo, len(all))
	for _, info := range all {
		byLabel[info.Label] = info
	}
	narrowed := make([]docs.VersionInfo, 0, len(wanted))
	for _, label := range wanted {
		normalized := strings.TrimSpace(label)
		if docs.IsCurrent(normalized) {
			normalized = docs.CurrentVersion
		}
		info, ok := byLabel[normalized]
		if !ok {
			return nil, fmt.Errorf("%w: %s", docs.ErrVersionUnknown, label)
		}
		narrowed = append(narrowed, info)
	}
	return narrowed, nil
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
