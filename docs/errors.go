package docs

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired      = errors.New("docs: title is required")
	ErrIDRequired         = errors.New("docs: id is required")
	ErrIDInvalid          = errors.New("docs: id contains invalid characters")
	ErrIDVersionMismatch  = errors.New("docs: id does not match the page's version snapshot")
	ErrOriginalIDRequired = errors.New("docs: original_id is required for versioned pages")
	ErrDuplicateID        = errors.New("docs: duplicate id within version")
	ErrVersionUnknown     = errors.New("docs: unknown version")
	ErrVersionLabelEmpty  = errors.New("docs: version label is empty")
	ErrPageNotFound       = errors.New("docs: page not found")
	ErrCorpusNotLoaded    = errors.New("docs: corpus has not been loaded")
	ErrVersionsFileEmpty  = errors.New("docs: versions file lists no versions")
	ErrSidebarUnknown     = errors.New("docs: sidebar not found for version")
)

// NotFoundError reports a missing indexed document with enough context for
// callers to build user-facing messages.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("docs: %s %q not found", e.Resource, e.Key)
}

// Is allows errors.Is(err, ErrPageNotFound) to match typed not-found errors.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrPageNotFound
}
