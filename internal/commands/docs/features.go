package docscmd

// FeatureGates exposes runtime feature toggles required by docs command
// handlers. Callers supply closures reading from docsite.Config.Features so
// handlers stay decoupled from configuration while honouring feature flags.
type FeatureGates struct {
	LintEnabled      func() bool
	GeneratorEnabled func() bool
	IndexEnabled     func() bool
}

func (g FeatureGates) lintEnabled() bool {
	if g.LintEnabled == nil {
		return true
	}
	return g.LintEnabled()
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return true
	}
	return g.GeneratorEnabled()
}

func (g FeatureGates) indexEnabled() bool {
	if g.IndexEnabled == nil {
		return true
	}
	return g.IndexEnabled()
}
