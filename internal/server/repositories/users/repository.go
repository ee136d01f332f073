package users

import (
	"context"

	"github.com/dstepanenko/storefront/internal/server/models"
)

// Repository is the credential store consumed by the user service. The
// storage layer's unique constraint on email is the final authority on
// duplicates; Exists is only an advisory fast path.
type Repository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Matches(ctx context.Context, email, digest string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
