package lint

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/registry"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Config controls which rules run and how their findings are graded.
type Config struct {
	// FailOnWarning promotes warning-grade findings to run failures.
	FailOnWarning bool
	// DisabledRules lists rule names to skip entirely.
	DisabledRules []string
	// SeverityOverrides re-grades rules, e.g. original-id-coverage -> error.
	SeverityOverrides map[string]string
}

// Service runs the documentation-hygiene rules over a loaded corpus.
type Service struct {
	cfg       Config
	logger    interfaces.Logger
	disabled  map[string]struct{}
	overrides map[string]Severity
}

// NewService validates the rule configuration and builds a linter.
func NewService(cfg Config, logger interfaces.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.NoOp()
	}

	disabled := make(map[string]struct{}, len(cfg.DisabledRules))
	for _, rule := range cfg.DisabledRules {
		disabled[rule] = struct{}{}
	}

	overrides := make(map[string]Severity, len(cfg.SeverityOverrides))
	for rule, value := range cfg.SeverityOverrides {
		severity, err := ParseSeverity(value)
		if err != nil {
			return nil, fmt.Errorf("lint: severity override for %s: %w", rule, err)
		}
		overrides[rule] = severity
	}

	return &Service{
		cfg:       cfg,
		logger:    logger,
		disabled:  disabled,
		overrides: overrides,
	}, nil
}

// FailOnWarning reports whether warnings fail the run.
func (s *Service) FailOnWarning() bool {
	return s.cfg.FailOnWarning
}

// Run executes every enabled rule and returns the aggregated report.
func (s *Service) Run(ctx context.Context, corpus *registry.Corpus) (*Report, error) {
	if corpus == nil {
		return nil, fmt.Errorf("lint: corpus is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	report := &Report{}
	emit := func(rule string, severity Severity, version, pagePath, message string) {
		if _, off := s.disabled[rule]; off {
			return
		}
		if override, ok := s.overrides[rule]; ok {
			severity = override
		}
		report.Add(Diagnostic{
			Rule:     rule,
			Severity: severity,
			Version:  version,
			Path:     pagePath,
			Message:  message,
		})
	}

	checkFrontMatterRequired(corpus, emit)
	checkIDFormat(corpus, emit)
	checkIDUnique(corpus, emit)
	checkOriginalIDUnique(corpus, emit)
	checkOriginalIDCoverage(corpus, emit)
	checkSidebars(corpus, emit)
	if s.enabled(RuleLinksResolve) {
		if err := checkLinksResolve(corpus, emit); err != nil {
			return nil, err
		}
	}

	report.Sort()

	s.logger.Info("lint.run.completed",
		"errors", report.Errors(),
		"warnings", report.Warnings(),
	)

	return report, nil
}

func (s *Service) enabled(rule string) bool {
	_, off := s.disabled[rule]
	return !off
}
