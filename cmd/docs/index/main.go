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
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("docs index: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("docs-index", flag.ExitOnError)
	docsRoot := fs.String("docs-root", "docs", "Path to the documentation corpus root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering pages")
	driver := fs.String("driver", "sqlite", "Index store driver (sqlite or postgres)")
	dsn := fs.String("dsn", "", "Database DSN for the index store")
	timeout := fs.Duration("timeout", 0, "Abort the command after this duration (0 uses the handler default)")
	logLevel := fs.String("log-level", "info", "Minimum log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dsn == "" {
		return fmt.Errorf("dsn is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		DocsRoot:       *docsRoot,
		Pattern:        *pattern,
		Recursive:      true,
		CommandTimeout: *timeout,
		IndexEnabled:   true,
		IndexDriver:    *driver,
		IndexDSN:       *dsn,
		LogLevel:       *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	container := module.Module.Container()
	if db := container.DB(); db != nil {
		if err := container.EnsureIndexSchema(ctx); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}

	handler := docscmd.NewSyncIndexHandler(
		module.Module.Index(),
		commands.CommandLogger(container.LoggerProvider(), "docs"),
		container.FeatureGates(),
		di.CommandTimeoutOptions[docscmd.SyncIndexCommand](container.Config.Commands)...,
	)

	if err := handler.Execute(ctx, docscmd.SyncIndexCommand{}); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "docs index sync completed")

	return nil
}
