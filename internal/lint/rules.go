package lint

import (
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-docsite/docs"
	"github.com/goliatone/go-docsite/internal/registry"
)

// emitFunc records one finding. The service layer applies severity overrides
// before the diagnostic lands in the report.
type emitFunc func(rule string, severity Severity, version, pagePath, message string)

func checkFrontMatterRequired(corpus *registry.Corpus, emit emitFunc) {
	for _, info := range corpus.Versions() {
		for _, doc := range corpus.Pages(info.Label) {
			if strings.TrimSpace(doc.FrontMatter.Title) == "" {
				emit(RuleFrontMatterRequired, SeverityError, info.Label, doc.FilePath,
					"front matter is missing required field title")
			}
			if strings.TrimSpace(doc.FrontMatter.ID) == "" {
				emit(RuleFrontMatterRequired, SeverityError, info.Label, doc.FilePath,
					"front matter is missing required field id")
			}
		}
	}
}

func checkIDFormat(corpus *registry.Corpus, emit emitFunc) {
	for _, info := range corpus.Versions() {
		for _, doc := range corpus.Pages(info.Label) {
			id := strings.TrimSpace(doc.FrontMatter.ID)
			if id == "" {
				continue
			}
			slug, err := docs.SlugForVersion(id, info.Label)
			if err != nil {
				emit(RuleIDFormat, SeverityError, info.Label, doc.FilePath,
					fmt.Sprintf("id %q does not carry the version-%s- prefix of its snapshot", id, info.Label))
				continue
			}
			if !docs.IsValidSlug(slug) {
				emit(RuleIDFormat, SeverityError, info.Label, doc.FilePath,
					fmt.Sprintf("id slug %q is not a valid slug", slug))
			}
			if !docs.IsCurrent(info.Label) && strings.TrimSpace(doc.FrontMatter.OriginalID) == "" {
				emit(RuleIDFormat, SeverityError, info.Label, doc.FilePath,
					"snapshot page is missing original_id")
			}
		}
	}
}

func checkIDUnique(corpus *registry.Corpus, emit emitFunc) {
	for _, dup := range corpus.Duplicates() {
		emit(RuleIDUnique, SeverityError, dup.Version, dup.Path,
			fmt.Sprintf("id %q already used by %s", dup.ID, dup.FirstPath))
	}
}

// checkOriginalIDUnique rejects two pages of one version sharing an effective
// original_id. The doc index derives its primary key from (version, original_id),
// so a duplicate would collide in the store.
func checkOriginalIDUnique(corpus *registry.Corpus, emit emitFunc) {
	for _, info := range corpus.Versions() {
		seen := map[string]string{}
		for _, doc := range corpus.Pages(info.Label) {
			original := registry.EffectiveOriginalID(doc)
			if original == "" {
				continue
			}
			if first, ok := seen[original]; ok {
				emit(RuleOriginalIDUnique, SeverityError, info.Label, doc.FilePath,
					fmt.Sprintf("original_id %q already used by %s", original, first))
				continue
			}
			seen[original] = doc.FilePath
		}
	}
}

func checkOriginalIDCoverage(corpus *registry.Corpus, emit emitFunc) {
	for _, original := range corpus.OriginalIDs() {
		anchor := ""
		if doc, err := corpus.Latest(original); err == nil {
			anchor = doc.FilePath
		}
		for _, info := range corpus.Versions() {
			if _, err := corpus.Resolve(original, info.Label); err != nil {
				emit(RuleOriginalIDCoverage, SeverityWarning, info.Label, anchor,
					fmt.Sprintf("original_id %q has no page in version %s", original, info.Label))
			}
		}
	}
}

func checkLinksResolve(corpus *registry.Corpus, emit emitFunc) error {
	pathsByVersion := map[string]map[string]struct{}{}
	idsByVersion := map[string]map[string]struct{}{}
	for _, info := range corpus.Versions() {
		paths := map[string]struct{}{}
		ids := map[string]struct{}{}
		for _, doc := range corpus.Pages(info.Label) {
			paths[doc.FilePath] = struct{}{}
			if id := strings.TrimSpace(doc.FrontMatter.ID); id != "" {
				ids[id] = struct{}{}
			}
		}
		pathsByVersion[info.Label] = paths
		idsByVersion[info.Label] = ids
	}

	extractor := newLinkExtractor()
	for _, info := range corpus.Versions() {
		for _, doc := range corpus.Pages(info.Label) {
			destinations, err := extractor.extract(doc.Body)
			if err != nil {
				return fmt.Errorf("lint: walk links in %s: %w", doc.FilePath, err)
			}
			for _, destination := range destinations {
				target := relativeDocTarget(destination)
				if target == "" {
					continue
				}
				// Path targets must land on a page of the same version; a link
				// escaping its snapshot into another tree is a defect even when
				// the file exists there.
				resolved := path.Clean(path.Join(path.Dir(doc.FilePath), target))
				if _, ok := pathsByVersion[info.Label][resolved]; ok {
					continue
				}
				// Links may also address pages by id instead of file path.
				candidate := strings.TrimSuffix(path.Base(target), ".md")
				if _, ok := idsByVersion[info.Label][candidate]; ok {
					continue
				}
				if _, ok := idsByVersion[info.Label][docs.VersionedID(info.Label, candidate)]; ok {
					continue
				}
				emit(RuleLinksResolve, SeverityError, info.Label, doc.FilePath,
					fmt.Sprintf("link %q does not resolve to a page in version %s", destination, info.Label))
			}
		}
	}
	return nil
}

func checkSidebars(corpus *registry.Corpus, emit emitFunc) {
	for _, info := range corpus.Versions() {
		sidebar := corpus.Sidebar(info.Label)
		if sidebar == nil {
			continue
		}

		referenced := map[string]struct{}{}
		for _, id := range sidebar.DocIDs() {
			referenced[id] = struct{}{}
			if _, err := corpus.Get(info.Label, id); err != nil {
				emit(RuleSidebarRefs, SeverityError, info.Label, docs.SidebarFile(info.Label),
					fmt.Sprintf("sidebar references unknown doc id %q", id))
			}
		}

		for _, doc := range corpus.Pages(info.Label) {
			id := strings.TrimSpace(doc.FrontMatter.ID)
			if id == "" {
				continue
			}
			if _, ok := referenced[id]; !ok {
				emit(RuleOrphanedPage, SeverityWarning, info.Label, doc.FilePath,
					fmt.Sprintf("page %q is not reachable from the %s sidebar", id, info.Label))
			}
		}
	}
}
