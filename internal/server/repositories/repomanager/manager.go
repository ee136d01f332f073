package repomanager

import (
	"context"
	"database/sql"

	"github.com/dstepanenko/storefront/internal/dbx"
	"github.com/dstepanenko/storefront/internal/server/repositories/items"
	"github.com/dstepanenko/storefront/internal/server/repositories/tags"
	"github.com/dstepanenko/storefront/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an arbitrary DBTX, so that
// services can run several repositories inside one transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
	Tags(db dbx.DBTX) tags.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
