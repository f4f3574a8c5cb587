package lint

import (
	"fmt"
	"sort"
)

// Severity grades a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ParseSeverity converts a config string into a Severity.
func ParseSeverity(value string) (Severity, error) {
	switch Severity(value) {
	case SeverityError:
		return SeverityError, nil
	case SeverityWarning:
		return SeverityWarning, nil
	default:
		return "", fmt.Errorf("lint: unknown severity %q", value)
	}
}

// Rule names, stable so configs can disable or re-grade them.
const (
	RuleFrontMatterRequired = "frontmatter-required"
	RuleIDFormat            = "id-format"
	RuleIDUnique            = "id-unique"
	RuleOriginalIDUnique    = "original-id-unique"
	RuleOriginalIDCoverage  = "original-id-coverage"
	RuleLinksResolve        = "links-resolve"
	RuleSidebarRefs         = "sidebar-refs"
	RuleOrphanedPage        = "orphaned-page"
)

// Diagnostic is a single finding against one file of the corpus.
type Diagnostic struct {
	Rule     string
	Severity Severity
	Version  string
	Path     string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s@%s: %s", d.Severity, d.Rule, d.Path, d.Version, d.Message)
}

// Report aggregates diagnostics from a lint run.
type Report struct {
	Diagnostics []Diagnostic
}

// Add appends a diagnostic to the report.
func (r *Report) Add(diag Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diag)
}

// Errors counts error-grade diagnostics.
func (r *Report) Errors() int {
	return r.count(SeverityError)
}

// Warnings counts warning-grade diagnostics.
func (r *Report) Warnings() int {
	return r.count(SeverityWarning)
}

// HasErrors reports whether any error-grade diagnostic was recorded.
func (r *Report) HasErrors() bool {
	return r.Errors() > 0
}

// Failed decides the run outcome, optionally promoting warnings to failures.
func (r *Report) Failed(failOnWarning bool) bool {
	if r.HasErrors() {
		return true
	}
	return failOnWarning && r.Warnings() > 0
}

// Sort orders diagnostics by version, path, then rule for stable output.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.Version != b.Version {
			return a.Version < b.Version
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Rule < b.Rule
	})
}

func (r *Report) count(severity Severity) int {
	total := 0
	for _, diag := range r.Diagnostics {
		if diag.Severity == severity {
			total++
		}
	}
	return total
}
