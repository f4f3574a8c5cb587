package docs

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is the persisted index row for a documentation page. The index lets
// external tooling (search, dashboards) query the corpus without re-walking
// the docs tree.
type Record struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID          uuid.UUID `bun:",pk,type:uuid"            json:"id"`
	Version     string    `bun:"version,notnull"          json:"version"`
	Slug        string    `bun:"slug,notnull"             json:"slug"`
	DocID       string    `bun:"doc_id,notnull"           json:"doc_id"`
	OriginalID  string    `bun:"original_id,notnull"      json:"original_id"`
	Title       string    `bun:"title,notnull"            json:"title"`
	Description string    `bun:"description"              json:"description,omitempty"`
	Path        string    `bun:"path,notnull"             json:"path"`
	Checksum    string    `bun:"checksum,notnull"         json:"checksum"`
	WordCount   int       `bun:"word_count,notnull,default:0" json:"word_count"`
	IndexedAt   time.Time `bun:"indexed_at,nullzero,default:current_timestamp" json:"indexed_at"`
}
