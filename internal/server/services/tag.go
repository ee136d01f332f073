package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dstepanenko/storefront/internal/server/models"
	"github.com/dstepanenko/storefront/internal/server/repositories/repomanager"
)

// TagService implements the catalog tag operations. Tag mutations invalidate
// the items listing cache because tags are embedded in the cached views.
type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       ItemsCache
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager, cache ItemsCache) *TagService {
	return &TagService{db: db, repomanager: m, cache: cache}
}

func (s *TagService) List(ctx context.Context) ([]*models.Tag, error) {
	tags, err := s.repomanager.Tags(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}
	return tags, nil
}

// Create inserts a tag. A taken name surfaces as common.ErrorDuplicateTag
// from the repository.
func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := s.repomanager.Tags(s.db).Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.invalidateTags(ctx)
	return tag, nil
}

// Delete removes the tag and, via cascade, its item relations.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Tags(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTags(ctx)
	return nil
}

func (s *TagService) invalidateTags(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
