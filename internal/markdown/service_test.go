package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}

	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestGoldmarkParser_SafeModeStripsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	html, err := parser.Parse([]byte("before\n\n<script>alert(1)</script>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw HTML to be suppressed, got %q", string(html))
	}
}

func TestServiceLoadDirectoryRendersBodies(t *testing.T) {
	svc := NewServiceWithFS(corpusFS(), Config{Recursive: true}, nil)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if len(doc.BodyHTML) == 0 {
			t.Fatalf("%s was not rendered", doc.FilePath)
		}
	}
}

func TestServiceLoadSingleDocument(t *testing.T) {
	svc := NewServiceWithFS(corpusFS(), Config{Recursive: true}, nil)

	doc, err := svc.Load(context.Background(), "version-1.0.0/overview.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != "1.0.0" {
		t.Fatalf("expected snapshot version, got %q", doc.Version)
	}
	if doc.FrontMatter.OriginalID != "overview" {
		t.Fatalf("expected original_id overview, got %q", doc.FrontMatter.OriginalID)
	}
	if !strings.Contains(string(doc.BodyHTML), "<h1") {
		t.Fatalf("expected rendered heading, got %q", string(doc.BodyHTML))
	}
}

func TestServiceRenderDocumentMergesOptions(t *testing.T) {
	svc := NewServiceWithFS(corpusFS(), Config{Recursive: true}, nil)

	doc, err := svc.Load(context.Background(), "overview.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	doc.Body = []byte("one\ntwo")
	html, err := svc.RenderDocument(context.Background(), doc, interfaces.ParseOptions{HardWraps: true})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if !strings.Contains(string(html), "one<br>") {
		t.Fatalf("expected hard wraps from overrides, got %q", string(html))
	}
	if string(doc.BodyHTML) != string(html) {
		t.Fatalf("expected document BodyHTML to be updated")
	}
}
