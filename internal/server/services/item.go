package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dstepanenko/storefront/internal/dbx"
	"github.com/dstepanenko/storefront/internal/server/models"
	"github.com/dstepanenko/storefront/internal/server/repositories/repomanager"
)

// ItemsCache is the listing cache consumed by ItemService. A nil cache
// disables caching entirely.
type ItemsCache interface {
	Get(ctx context.Context) ([]*models.ItemView, bool)
	Set(ctx context.Context, views []*models.ItemView)
	Invalidate(ctx context.Context)
}

// ItemPatch carries a partial item update. Nil fields are left untouched;
// a non-nil Tags replaces the item's whole tag set.
type ItemPatch struct {
	Name     *string
	Count    *int64
	Original *int64
	Discount *int64
	Avatar   *string
	Tags     []int64
}

// ItemService implements the catalog item operations. Reads of the full
// listing go through the cache when one is configured; every mutation
// invalidates it.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       ItemsCache
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager, cache ItemsCache) *ItemService {
	return &ItemService{db: db, repomanager: m, cache: cache}
}

// List returns every item with its tags merged in, cheapest path first:
// cache hit, otherwise two queries (items + the full item/tag relation)
// stitched together in memory.
func (s *ItemService) List(ctx context.Context) ([]*models.ItemView, error) {
	if s.cache != nil {
		if views, ok := s.cache.Get(ctx); ok {
			return views, nil
		}
	}

	repo := s.repomanager.Items(s.db)

	items, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}

	relations, err := repo.AllItemTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing item tags: %w", err)
	}

	tagsByItem := make(map[int64][]models.TagRef, len(items))
	for _, r := range relations {
		tagsByItem[r.ItemID] = append(tagsByItem[r.ItemID], models.TagRef{ID: r.TagID, Name: r.TagName})
	}

	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		tags := tagsByItem[item.ID]
		if tags == nil {
			tags = []models.TagRef{}
		}
		views = append(views, itemView(item, tags))
	}

	if s.cache != nil {
		s.cache.Set(ctx, views)
	}
	return views, nil
}

// Get returns one item with its tags. A missing item surfaces as
// common.ErrorNotFound from the repository.
func (s *ItemService) Get(ctx context.Context, id int64) (*models.ItemView, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := repo.TagsForItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading item tags: %w", err)
	}
	return itemView(item, tags), nil
}

// Count returns the stock counter of one item.
func (s *ItemService) Count(ctx context.Context, id int64) (int64, error) {
	item, err := s.repomanager.Items(s.db).Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return item.Count, nil
}

// Create inserts the item and attaches its tags in one transaction, so an
// unknown tag id rolls the whole insert back.
func (s *ItemService) Create(ctx context.Context, item *models.Item, tagIDs []int64) (*models.ItemView, error) {
	var created *models.Item

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Items(tx)

		var err error
		created, err = repo.Create(ctx, item)
		if err != nil {
			return err
		}
		return repo.SetTags(ctx, created.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.Get(ctx, created.ID)
}

// Update applies a partial patch. The read-modify-write and the optional tag
// replacement run in one transaction.
func (s *ItemService) Update(ctx context.Context, id int64, patch *ItemPatch) (*models.ItemView, error) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Items(tx)

		item, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Count != nil {
			item.Count = *patch.Count
		}
		if patch.Original != nil {
			item.Original = *patch.Original
		}
		if patch.Discount != nil {
			item.Discount = *patch.Discount
		}
		if patch.Avatar != nil {
			item.Avatar = *patch.Avatar
		}

		if err := repo.Update(ctx, item); err != nil {
			return err
		}

		if patch.Tags != nil {
			return repo.SetTags(ctx, id, patch.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete removes the item; the tag relation rows go with it via cascade.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Items(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ItemService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func itemView(item *models.Item, tags []models.TagRef) *models.ItemView {
	if tags == nil {
		tags = []models.TagRef{}
	}
	return &models.ItemView{
		ID:     item.ID,
		Name:   item.Name,
		Count:  item.Count,
		Avatar: item.Avatar,
		Price:  models.Price{Original: item.Original, Discount: item.Discount},
		Tags:   tags,
	}
}
