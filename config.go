package docsite

import "github.com/goliatone/go-docsite/internal/runtimeconfig"

var (
	ErrDocsRootRequired           = runtimeconfig.ErrDocsRootRequired
	ErrGeneratorFeatureRequired   = runtimeconfig.ErrGeneratorFeatureRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrIndexFeatureRequired       = runtimeconfig.ErrIndexFeatureRequired
	ErrIndexDSNRequired           = runtimeconfig.ErrIndexDSNRequired
	ErrIndexDriverUnknown         = runtimeconfig.ErrIndexDriverUnknown
	ErrThemePathRequired          = runtimeconfig.ErrThemePathRequired
	ErrLintSeverityInvalid        = runtimeconfig.ErrLintSeverityInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrWorkersNegative            = runtimeconfig.ErrWorkersNegative
)

type (
	Config               = runtimeconfig.Config
	SiteConfig           = runtimeconfig.SiteConfig
	DocsConfig           = runtimeconfig.DocsConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LintConfig           = runtimeconfig.LintConfig
	GeneratorConfig      = runtimeconfig.GeneratorConfig
	IndexConfig          = runtimeconfig.IndexConfig
	ThemeConfig          = runtimeconfig.ThemeConfig
	NavigationConfig     = runtimeconfig.NavigationConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Features             = runtimeconfig.Features
	CommandsConfig       = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
