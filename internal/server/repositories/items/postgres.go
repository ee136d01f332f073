package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dstepanenko/storefront/internal/common"
	"github.com/dstepanenko/storefront/internal/dbx"
	"github.com/dstepanenko/storefront/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`INSERT INTO items (name, count, original, discount, avatar)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Count, item.Original, item.Discount, item.Avatar).Scan(&item.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Item, error) {
	query :=
		`SELECT id, name, count, original, discount, avatar FROM items
		 WHERE id = $1
		 `

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Count, &item.Original, &item.Discount, &item.Avatar)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Item, error) {
	query :=
		`SELECT id, name, count, original, discount, avatar FROM items
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Count, &item.Original, &item.Discount, &item.Avatar); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) error {
	query :=
		`UPDATE items SET name = $2, count = $3, original = $4, discount = $5, avatar = $6
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Count, item.Original, item.Discount, item.Avatar)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM items
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) SetTags(ctx context.Context, itemID int64, tagIDs []int64) error {
	deleteQuery :=
		`DELETE FROM tag_of_item
		 WHERE item_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, deleteQuery, itemID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	insertQuery :=
		`INSERT INTO tag_of_item (item_id, tag_id)
		 VALUES ($1, $2)
		 `

	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx, insertQuery, itemID, tagID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				(pgErr.Code == pgerrcode.ForeignKeyViolation || pgErr.Code == pgerrcode.UniqueViolation) {
				return common.ErrorUnknownTag
			}
			return fmt.Errorf("db error: %w", err)
		}
	}

	return nil
}

func (r *PostgresRepository) TagsForItem(ctx context.Context, itemID int64) ([]models.TagRef, error) {
	query :=
		`SELECT t.id, t.name FROM tag_of_item ti
		 JOIN tags t ON t.id = ti.tag_id
		 WHERE ti.item_id = $1
		 ORDER BY t.id
		 `

	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tags := []models.TagRef{}
	for rows.Next() {
		var tag models.TagRef
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tags, nil
}

func (r *PostgresRepository) AllItemTags(ctx context.Context) ([]*models.ItemTag, error) {
	query :=
		`SELECT ti.item_id, ti.tag_id, t.name FROM tag_of_item ti
		 JOIN tags t ON t.id = ti.tag_id
		 ORDER BY ti.item_id, ti.tag_id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var relations []*models.ItemTag
	for rows.Next() {
		rel := &models.ItemTag{}
		if err := rows.Scan(&rel.ItemID, &rel.TagID, &rel.TagName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return relations, nil
}
