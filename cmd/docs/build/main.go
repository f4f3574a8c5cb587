package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goliatone/go-docsite/cmd/docs/internal/bootstrap"
	"github.com/goliatone/go-docsite/internal/commands"
	docscmd "github.com/goliatone/go-docsite/internal/commands/docs"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/generator"
)

var moduleBuilder = bootstrap.BuildModule

const timeRounding = time.Millisecond

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("docs build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("docs-build", flag.ExitOnError)
	docsRoot := fs.String("docs-root", "docs", "Path to the documentation corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering pages")
	outputDir := fs.String("output", "build", "Directory generated artifacts are written to")
	baseURL := fs.String("base-url", "", "Absolute base URL used for sitemap and canonical links")
	siteTitle := fs.String("site-title", "", "Site title surfaced in layouts")
	tagline := fs.String("tagline", "", "Site tagline surfaced in layouts")
	currentLabel := fs.String("current-label", "", "Display label for the working tree version")
	versions := fs.String("versions", "", "Comma separated version labels to build (defaults to all)")
	dryRun := fs.Bool("dry-run", false, "Render pages without writing artifacts")
	cleanBuild := fs.Bool("clean", true, "Remove previous artifacts before building")
	incremental := fs.Bool("incremental", false, "Skip pages whose source is unchanged since the last build")
	sitemap := fs.Bool("sitemap", true, "Emit sitemap.xml")
	robots := fs.Bool("robots", false, "Emit robots.txt")
	workers := fs.Int("workers", 0, "Concurrent render workers (0 uses the CPU count)")
	renderTimeout := fs.Duration("render-timeout", 0, "Per-page render deadline (0 disables)")
	timeout := fs.Duration("timeout", 0, "Abort the command after this duration (0 uses the handler default)")
	themePath := fs.String("theme-path", "", "Path to a theme directory (enables theming)")
	themeName := fs.String("theme-name", "", "Theme name selected from the theme registry")
	themeVariant := fs.String("theme-variant", "", "Theme variant (e.g. dark)")
	logLevel := fs.String("log-level", "info", "Minimum log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	setFlags := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	module, err := moduleBuilder(bootstrap.Options{
		DocsRoot:         *docsRoot,
		Pattern:          *pattern,
		Recursive:        true,
		CurrentLabel:     *currentLabel,
		SiteTitle:        *siteTitle,
		Tagline:          *tagline,
		BaseURL:          *baseURL,
		GeneratorEnabled: true,
		OutputDir:        *outputDir,
		CleanBuild:       bootstrap.BoolFlag(setFlags["clean"], *cleanBuild),
		Incremental:      bootstrap.BoolFlag(setFlags["incremental"], *incremental),
		GenerateSitemap:  bootstrap.BoolFlag(setFlags["sitemap"], *sitemap),
		GenerateRobots:   bootstrap.BoolFlag(setFlags["robots"], *robots),
		Workers:          *workers,
		RenderTimeout:    *renderTimeout,
		CommandTimeout:   *timeout,
		ThemePath:        *themePath,
		ThemeName:        *themeName,
		ThemeVariant:     *themeVariant,
		LogLevel:         *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	resultSink := func(result *generator.BuildResult) {
		printBuildResult(os.Stdout, result)
	}

	container := module.Module.Container()
	handler := docscmd.NewBuildSiteHandler(
		module.Module.Generator(),
		commands.CommandLogger(container.LoggerProvider(), "docs"),
		container.FeatureGates(),
		resultSink,
		di.CommandTimeoutOptions[docscmd.BuildSiteCommand](container.Config.Commands)...,
	)

	cmd := docscmd.BuildSiteCommand{
		Versions: bootstrap.SplitVersions(*versions),
		DryRun:   *dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}

	return nil
}

func printBuildResult(out *os.File, result *generator.BuildResult) {
	if result == nil {
		return
	}
	mode := "build"
	if result.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(out, "%s: %d pages built, %d skipped, %d assets, %d assets skipped in %s\n",
		mode, result.PagesBuilt, result.PagesSkipped, result.AssetsBuilt, result.AssetsSkipped, result.Duration.Round(timeRounding))
	for _, diag := range result.Diagnostics {
		if diag.Err != nil {
			fmt.Fprintf(out, "  error rendering %s@%s: %v\n", diag.ID, diag.Version, diag.Err)
		}
	}
}
