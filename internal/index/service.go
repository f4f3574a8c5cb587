package index

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-docsite/docs"
	"github.com/goliatone/go-docsite/internal/identity"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/registry"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the index feature is disabled.
	ErrServiceDisabled  = errors.New("index: service disabled")
	errRegistryRequired = errors.New("index: registry service is required")
	errRepoRequired     = errors.New("index: record repository is required")
)

// Service describes the persistent doc-index contract.
type Service interface {
	Sync(ctx context.Context) (*SyncResult, error)
	Search(ctx context.Context, query, version string) ([]*docs.Record, error)
}

// SyncResult reports what a sync run changed.
type SyncResult struct {
	Indexed int
	Pruned  int
}

// NewService wires the index over the registry and the record repository.
func NewService(reg *registry.Service, repo *docs.BunRecordRepository, logger interfaces.Logger) (Service, error) {
	if reg == nil {
		return nil, errRegistryRequired
	}
	if repo == nil {
		return nil, errRepoRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		registry: reg,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	registry *registry.Service
	repo     *docs.BunRecordRepository
	logger   interfaces.Logger
	now      func() time.Time
}

type disabledService struct{}

// Sync upserts every corpus page into the store and prunes records whose
// source files vanished.
func (s *service) Sync(ctx context.Context) (*SyncResult, error) {
	corpus, err := s.registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	keep := map[string]struct{}{}

	for _, info := range corpus.Versions() {
		for _, doc := range corpus.Pages(info.Label) {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			record := recordFor(doc, info.Label, s.now())
			if record == nil {
				continue
			}
			if _, err := s.repo.Upsert(ctx, record); err != nil {
				return result, err
			}
			keep[record.Path] = struct{}{}
			result.Indexed++
		}
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return result, err
	}
	for _, record := range existing {
		if _, ok := keep[record.Path]; ok {
			continue
		}
		if err := s.repo.Delete(ctx, record); err != nil {
			return result, err
		}
		result.Pruned++
	}

	s.logger.Info("index.sync.completed",
		"indexed", result.Indexed,
		"pruned", result.Pruned,
	)
	return result, nil
}

// Search matches titles and descriptions, optionally scoped to a version.
func (s *service) Search(ctx context.Context, query, version string) ([]*docs.Record, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query), strings.TrimSpace(version))
}

// recordFor maps a corpus page to its index row. Pages without an id are not
// indexed; lint reports them.
func recordFor(doc *docs.Document, version string, indexedAt time.Time) *docs.Record {
	id := strings.TrimSpace(doc.FrontMatter.ID)
	if id == "" {
		return nil
	}

	slug := id
	if parsed, err := docs.SlugForVersion(id, version); err == nil {
		slug = parsed
	}

	original := registry.EffectiveOriginalID(doc)
	if original == "" {
		original = slug
	}

	return &docs.Record{
		ID:          identity.DocumentUUID(version, original),
		Version:     version,
		Slug:        slug,
		DocID:       id,
		OriginalID:  original,
		Title:       doc.FrontMatter.Title,
		Description: doc.FrontMatter.Description,
		Path:        doc.FilePath,
		Checksum:    hex.EncodeToString(doc.Checksum),
		WordCount:   len(strings.Fields(string(doc.Body))),
		IndexedAt:   indexedAt,
	}
}

func (disabledService) Sync(context.Context) (*SyncResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Search(context.Context, string, string) ([]*docs.Record, error) {
	return nil, ErrServiceDisabled
}
