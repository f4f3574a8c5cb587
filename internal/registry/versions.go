package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-docsite/docs"
)

// VersionsFile names the corpus version manifest: an ordered JSON array of
// snapshot labels, newest first.
const VersionsFile = "versions.json"

var (
	versionsSchemaOnce     sync.Once
	versionsSchemaCompiled *jsonschema.Schema
	versionsSchemaErr      error
)

func versionsValidator() (*jsonschema.Schema, error) {
	versionsSchemaOnce.Do(func() {
		versionsSchemaCompiled, versionsSchemaErr = compileSchema("versions.json", versionsSchema)
	})
	return versionsSchemaCompiled, versionsSchemaErr
}

// LoadVersions parses and validates versions.json from the corpus root. A
// missing file yields an empty list: the corpus then consists solely of the
// current tree.
func LoadVersions(fsys fs.FS) ([]string, error) {
	data, err := fs.ReadFile(fsys, VersionsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("registry: read %s: %w", VersionsFile, err)
	}

	schema, err := versionsValidator()
	if err != nil {
		return nil, fmt.Errorf("registry: compile versions schema: %w", err)
	}

	decoded, err := validateAgainst(schema, VersionsFile, data, ErrVersionsFileInvalid)
	if err != nil {
		return nil, err
	}

	raw, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected array", ErrVersionsFileInvalid, VersionsFile)
	}

	labels := make([]string, 0, len(raw))
	for _, entry := range raw {
		label, ok := entry.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s: expected string entries", ErrVersionsFileInvalid, VersionsFile)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("%w: %s", docs.ErrVersionLabelEmpty, VersionsFile)
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// BuildVersionInfos assembles the ordered version list: the current tree
// first, then snapshots in manifest order (newest first).
func BuildVersionInfos(labels []string) []docs.VersionInfo {
	infos := make([]docs.VersionInfo, 0, len(labels)+1)
	infos = append(infos, docs.VersionInfo{
		Label:    docs.CurrentVersion,
		Current:  true,
		Position: 0,
	})
	for i, label := range labels {
		infos = append(infos, docs.VersionInfo{
			Label:    label,
			Position: i + 1,
		})
	}
	return infos
}
