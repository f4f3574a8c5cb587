package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docsite/cmd/docs/internal/bootstrap"
	"github.com/goliatone/go-docsite/internal/commands"
	docscmd "github.com/goliatone/go-docsite/internal/commands/docs"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/lint"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runLint(os.Args[1:]); err != nil {
		log.Fatalf("docs lint: %v", err)
	}
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("docs-lint", flag.ExitOnError)
	docsRoot := fs.String("docs-root", "docs", "Path to the documentation corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering pages")
	failOnWarning := fs.Bool("fail-on-warning", false, "Treat warnings as failures")
	timeout := fs.Duration("timeout", 0, "Abort the command after this duration (0 uses the handler default)")
	logLevel := fs.String("log-level", "info", "Minimum log level (trace, debug, info, warn, error)")
	quiet := fs.Bool("quiet", false, "Suppress per-diagnostic output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	setFlags := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	module, err := moduleBuilder(bootstrap.Options{
		DocsRoot:       *docsRoot,
		Pattern:        *pattern,
		Recursive:      true,
		FailOnWarning:  bootstrap.BoolFlag(setFlags["fail-on-warning"], *failOnWarning),
		CommandTimeout: *timeout,
		LogLevel:       *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module.Module.Linter() == nil {
		return fmt.Errorf("lint service not configured; ensure Features.Lint is enabled")
	}

	ctx := context.Background()

	reportSink := func(report *lint.Report) {
		if *quiet {
			return
		}
		for _, diag := range report.Diagnostics {
			fmt.Fprintln(os.Stdout, diag.String())
		}
	}

	container := module.Module.Container()
	handler := docscmd.NewLintCorpusHandler(
		module.Module.Registry(),
		module.Module.Linter(),
		commands.CommandLogger(container.LoggerProvider(), "docs"),
		container.FeatureGates(),
		reportSink,
		di.CommandTimeoutOptions[docscmd.LintCorpusCommand](container.Config.Commands)...,
	)

	cmd := docscmd.LintCorpusCommand{
		FailOnWarning: bootstrap.BoolFlag(setFlags["fail-on-warning"], *failOnWarning),
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute lint command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "docs lint completed without failures")

	return nil
}
