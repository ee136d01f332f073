package tags

import (
	"context"

	"github.com/dstepanenko/storefront/internal/server/models"
)

// Repository persists catalog tags. Name uniqueness is enforced by the
// storage layer.
type Repository interface {
	List(ctx context.Context) ([]*models.Tag, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}
