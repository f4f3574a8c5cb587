package docs

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRecordRepository wraps the generic repository with docs-flavoured lookups
// and error mapping.
type BunRecordRepository struct {
	repo repository.Repository[*Record]
}

func NewBunRecordRepository(db *bun.DB) *BunRecordRepository {
	return NewBunRecordRepositoryWithCache(db, nil, nil)
}

// NewBunRecordRepositoryWithCache constructs a record repository with optional caching.
func NewBunRecordRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRecordRepository {
	base := NewRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunRecordRepository{repo: wrapped}
}

func (r *BunRecordRepository) Create(ctx context.Context, record *Record) (*Record, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	return created, nil
}

// Upsert stores the record, updating the existing row when the path is
// already indexed.
func (r *BunRecordRepository) Upsert(ctx context.Context, record *Record) (*Record, error) {
	existing, err := r.repo.GetByIdentifier(ctx, record.Path)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return r.Create(ctx, record)
		}
		return nil, mapRepositoryError(err, "document", record.Path)
	}

	record.ID = existing.ID
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns(
			"version",
			"slug",
			"doc_id",
			"original_id",
			"title",
			"description",
			"checksum",
			"word_count",
			"indexed_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "document", record.Path)
	}
	return updated, nil
}

func (r *BunRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "document", id.String())
	}
	return result, nil
}

func (r *BunRecordRepository) GetByPath(ctx context.Context, path string) (*Record, error) {
	result, err := r.repo.GetByIdentifier(ctx, path)
	if err != nil {
		return nil, mapRepositoryError(err, "document", path)
	}
	return result, nil
}

func (r *BunRecordRepository) List(ctx context.Context) ([]*Record, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	return records, nil
}

func (r *BunRecordRepository) ListByVersion(ctx context.Context, version string) ([]*Record, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("d.version = ?", version)
	}))
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	return records, nil
}

// Search matches the query against titles and descriptions, optionally scoped
// to a single version.
func (r *BunRecordRepository) Search(ctx context.Context, query, version string) ([]*Record, error) {
	pattern := "%" + query + "%"
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("(d.title LIKE ? OR d.description LIKE ?)", pattern, pattern)
		if version != "" {
			q = q.Where("d.version = ?", version)
		}
		return q.Order("d.version ASC", "d.slug ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	return records, nil
}

func (r *BunRecordRepository) Delete(ctx context.Context, record *Record) error {
	if err := r.repo.Delete(ctx, record); err != nil {
		return mapRepositoryError(err, "document", record.Path)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
