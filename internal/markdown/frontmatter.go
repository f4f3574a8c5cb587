package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// version, raw content, and modification time. BodyHTML is intentionally left
// empty so callers can render lazily.
func BuildDocument(path string, version string, source []byte, modified time.Time) (*interfaces.Document, error) {
	frontmatter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		Version:      version,
		FrontMatter:  frontmatter,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title        string         `yaml:"title"`
	ID           string         `yaml:"id"`
	OriginalID   string         `yaml:"original_id"`
	SidebarLabel string         `yaml:"sidebar_label"`
	Description  string         `yaml:"description"`
	Keywords     []string       `yaml:"keywords"`
	HideTitle    bool           `yaml:"hide_title"`
	Custom       map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+7)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.ID != "" {
		raw["id"] = env.ID
	}
	if env.OriginalID != "" {
		raw["original_id"] = env.OriginalID
	}
	if env.SidebarLabel != "" {
		raw["sidebar_label"] = env.SidebarLabel
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if len(env.Keywords) > 0 {
		raw["keywords"] = append([]string(nil), env.Keywords...)
	}
	raw["hide_title"] = env.HideTitle

	return interfaces.FrontMatter{
		Title:        env.Title,
		ID:           env.ID,
		OriginalID:   env.OriginalID,
		SidebarLabel: env.SidebarLabel,
		Description:  env.Description,
		Keywords:     append([]string(nil), env.Keywords...),
		HideTitle:    env.HideTitle,
		Custom:       cloneMap(env.Custom),
		Raw:          raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
