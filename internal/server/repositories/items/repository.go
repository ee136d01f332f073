package items

import (
	"context"

	"github.com/dstepanenko/storefront/internal/server/models"
)

// Repository persists catalog items and their tag relations.
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	List(ctx context.Context) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id int64) error

	// SetTags replaces the item's tag set. Callers run it inside a
	// transaction together with the item write it belongs to.
	SetTags(ctx context.Context, itemID int64, tagIDs []int64) error
	TagsForItem(ctx context.Context, itemID int64) ([]models.TagRef, error)
	AllItemTags(ctx context.Context) ([]*models.ItemTag, error)
}
