package lint

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// linkExtractor walks Markdown sources and collects link destinations. A single
// parser instance is reused across pages; goldmark parsers are stateless.
type linkExtractor struct {
	md goldmark.Markdown
}

func newLinkExtractor() *linkExtractor {
	return &linkExtractor{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// extract returns every link destination found in the document body, in order.
func (e *linkExtractor) extract(source []byte) ([]string, error) {
	root := e.md.Parser().Parse(text.NewReader(source))

	var destinations []string
	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := node.(*ast.Link); ok {
			destinations = append(destinations, string(link.Destination))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return destinations, nil
}

// relativeDocTarget reduces a link destination to a corpus-relative Markdown
// target. External URLs, in-page anchors, and non-Markdown assets yield "".
func relativeDocTarget(destination string) string {
	dest := strings.TrimSpace(destination)
	if dest == "" {
		return ""
	}
	if strings.HasPrefix(dest, "#") {
		return ""
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "//") {
		return ""
	}
	if strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "tel:") {
		return ""
	}
	if idx := strings.IndexAny(dest, "#?"); idx >= 0 {
		dest = dest[:idx]
	}
	if !strings.HasSuffix(dest, ".md") {
		return ""
	}
	return dest
}
