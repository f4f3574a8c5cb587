package docs

import (
	"fmt"
	"strings"
)

// CurrentVersion labels the working docs tree. Pages in the current tree carry
// bare slugs as ids; only frozen snapshots use the version-<label>-<slug> form.
const CurrentVersion = "current"

const (
	// VersionDirPrefix prefixes snapshot directories, e.g. version-1.0.0/.
	VersionDirPrefix = "version-"
	// versionedIDPrefix prefixes snapshot page ids, e.g. version-1.0.0-overview.
	versionedIDPrefix = "version-"
)

// IsCurrent reports whether the label addresses the working docs tree.
func IsCurrent(version string) bool {
	version = strings.TrimSpace(version)
	return version == "" || version == CurrentVersion
}

// VersionDir returns the directory name holding a version snapshot. The
// current tree lives at the docs root, so its directory is empty.
func VersionDir(version string) string {
	if IsCurrent(version) {
		return ""
	}
	return VersionDirPrefix + version
}

// VersionFromDir recovers the version label from a top-level directory name.
// Directories without the snapshot prefix belong to the current tree.
func VersionFromDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if rest, ok := strings.CutPrefix(dir, VersionDirPrefix); ok && rest != "" {
		return rest
	}
	return CurrentVersion
}

// VersionedID composes the page identifier for a slug within a version.
// Current-tree pages keep their bare slug.
func VersionedID(version, slug string) string {
	slug = strings.TrimSpace(slug)
	if IsCurrent(version) {
		return slug
	}
	return versionedIDPrefix + version + "-" + slug
}

// SlugForVersion recovers the slug portion of an id given the version it was
// found under. Both version labels and slugs may contain hyphens, so the split
// is only well-defined with the label known from directory context.
func SlugForVersion(id, version string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrIDRequired
	}
	if IsCurrent(version) {
		return id, nil
	}
	prefix := versionedIDPrefix + version + "-"
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: id %q, version %q", ErrIDVersionMismatch, id, version)
	}
	return rest, nil
}

// SidebarFile returns the sidebar filename for a version. The current tree
// uses sidebars.json; snapshots prefix the file with their label.
func SidebarFile(version string) string {
	if IsCurrent(version) {
		return "sidebars.json"
	}
	return VersionDirPrefix + version + "-sidebars.json"
}
