package di

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-docsite/internal/commands"
	docscmd "github.com/goliatone/go-docsite/internal/commands/docs"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
)

func TestCommandTimeoutOptionsZeroTimeout(t *testing.T) {
	opts := CommandTimeoutOptions[docscmd.LintCorpusCommand](runtimeconfig.CommandsConfig{})
	if opts != nil {
		t.Fatalf("zero timeout must yield no options, got %d", len(opts))
	}
}

func TestCommandTimeoutOptionsEnforceDeadline(t *testing.T) {
	opts := CommandTimeoutOptions[docscmd.LintCorpusCommand](runtimeconfig.CommandsConfig{
		Timeout: 5 * time.Millisecond,
	})
	if len(opts) != 1 {
		t.Fatalf("expected one handler option, got %d", len(opts))
	}

	handler := commands.NewHandler(func(ctx context.Context, _ docscmd.LintCorpusCommand) error {
		<-ctx.Done()
		return ctx.Err()
	}, opts...)

	err := handler.Execute(context.Background(), docscmd.LintCorpusCommand{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
