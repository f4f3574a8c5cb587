// Package markdown provides the concrete implementation of the documentation
// ingestion pipeline: front-matter extraction, filesystem discovery across
// version snapshots, and Markdown-to-HTML rendering.
package markdown
