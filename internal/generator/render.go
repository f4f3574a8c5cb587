package generator

import (
	"bytes"
	"fmt"
	"html/template"
)

// defaultLayout renders pages when the active theme does not ship its own
// templates/layout.html.
const defaultLayout = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Page.Title }}{{ with .Site.Title }} | {{ . }}{{ end }}</title>
  {{- with .Page.Description }}
  <meta name="description" content="{{ . }}">
  {{- end }}
  {{- range .Theme.Assets }}
  {{- if hasSuffix . ".css" }}
  <link rel="stylesheet" href="/assets/{{ . }}">
  {{- end }}
  {{- end }}
</head>
<body data-theme="{{ .Theme.Name }}{{ with .Theme.Variant }}-{{ . }}{{ end }}">
  <header class="site-header">
    <a class="site-title" href="/">{{ .Site.Title }}</a>
    {{- with .Site.Tagline }}
    <p class="site-tagline">{{ . }}</p>
    {{- end }}
    <nav class="version-picker">
      {{- range .Site.Versions }}
      <span class="version{{ if eq .Label $.Page.Version }} active{{ end }}">{{ if and .Current $.Site.CurrentLabel }}{{ $.Site.CurrentLabel }}{{ else }}{{ .Label }}{{ end }}</span>
      {{- end }}
    </nav>
  </header>
  <div class="layout">
    <aside class="sidebar">
      {{- range .Sidebar }}
      <section>
        <h3>{{ .Category }}</h3>
        <ul>
          {{- range .Items }}
          <li{{ if .Active }} class="active"{{ end }}><a href="{{ .Route }}">{{ .Title }}</a></li>
          {{- end }}
        </ul>
      </section>
      {{- end }}
    </aside>
    <main class="content">
      {{- if not .Page.HideTitle }}
      <h1>{{ .Page.Title }}</h1>
      {{- end }}
      {{ .Page.Content }}
    </main>
  </div>
  <footer class="site-footer">
    <p>Generated {{ .Build.GeneratedAt.UTC.Format "2006-01-02" }}</p>
  </footer>
  {{- range .Theme.Assets }}
  {{- if hasSuffix . ".js" }}
  <script src="/assets/{{ . }}"></script>
  {{- end }}
  {{- end }}
</body>
</html>
`

// pageRenderer executes the layout template against a TemplateContext.
type pageRenderer struct {
	tpl *template.Template
}

func newPageRenderer(theme *themePipeline) (*pageRenderer, error) {
	source := defaultLayout
	if theme != nil {
		if data, ok := theme.layoutSource(); ok {
			source = string(data)
		}
	}

	tpl, err := template.New("layout").Funcs(templateFuncs()).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("generator: parse layout template: %w", err)
	}
	return &pageRenderer{tpl: tpl}, nil
}

func (r *pageRenderer) render(ctx TemplateContext) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("generator: execute layout for %s@%s: %w", ctx.Page.ID, ctx.Page.Version, err)
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"hasSuffix": func(value, suffix string) bool {
			return len(value) >= len(suffix) && value[len(value)-len(suffix):] == suffix
		},
	}
}
