package docscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	lintCorpusMessageType = "docsite.docs.lint_corpus"
	buildSiteMessageType  = "docsite.docs.build_site"
	syncIndexMessageType  = "docsite.docs.sync_index"
)

// LintCorpusCommand runs the documentation-hygiene rules over the corpus.
type LintCorpusCommand struct {
	// FailOnWarning promotes warnings to failures for this run, overriding the
	// configured default when set.
	FailOnWarning *bool `json:"fail_on_warning,omitempty"`
}

// Type implements command.Message.
func (LintCorpusCommand) Type() string { return lintCorpusMessageType }

// Validate implements command.Message validation; the lint command carries no
// required input.
func (LintCorpusCommand) Validate() error { return nil }

// BuildSiteCommand triggers a static-site build, optionally narrowed to a
// subset of versions.
type BuildSiteCommand struct {
	// Versions limits the build to the named versions; empty builds all.
	Versions []string `json:"versions,omitempty"`
	// DryRun renders pages without writing artifacts.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate rejects blank version labels before handlers execute.
func (cmd BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Versions, validation.Each(validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("docsite.docs.build_site.version_blank", "version labels cannot be blank")
			}
			return nil
		}))),
	)
}

// SyncIndexCommand upserts the corpus into the persistent doc index and
// prunes records whose source files vanished.
type SyncIndexCommand struct{}

// Type implements command.Message.
func (SyncIndexCommand) Type() string { return syncIndexMessageType }

// Validate implements command.Message validation; the sync command carries no
// required input.
func (SyncIndexCommand) Validate() error { return nil }
