package docs

import (
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Document re-exports the shared document contract so registry and lint
// consumers can depend on the docs package alone.
type Document = interfaces.Document

// FrontMatter re-exports the shared front-matter contract.
type FrontMatter = interfaces.FrontMatter

// VersionInfo describes a version snapshot known to the corpus.
type VersionInfo struct {
	// Label is the version identifier as it appears in directory names and
	// versioned page ids, e.g. "1.0.0".
	Label string `json:"label"`
	// Current marks the working docs tree, which carries unversioned ids.
	Current bool `json:"current"`
	// Position preserves the declaration order from versions.json, newest first.
	Position int `json:"position"`
}
