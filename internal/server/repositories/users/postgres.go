package users

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

func (r *PostgresRepository) Exists(ctx context.Context, email string) (bool, error) {
	query :=
		`SELECT count(*) FROM users
		 WHERE email = $1
		 `

	var count int64
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return count > 0, nil
}

func (r *PostgresRepository) Matches(ctx context.Context, email, digest string) (bool, error) {
	query :=
		`SELECT count(*) FROM users
		 WHERE email = $1 AND password = $2
		 `

	var count int64
	if err := r.db.QueryRowContext(ctx, query, email, digest).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	// email is unique, so count is 0 or 1
	return count == 1, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password, firstname, lastname, gender, birthday)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Password,
		user.Profile.Firstname, user.Profile.Lastname, user.Profile.Gender, user.Profile.Birthday,
	).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password, firstname, lastname, gender, birthday FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password,
		&user.Profile.Firstname, &user.Profile.Lastname, &user.Profile.Gender, &user.Profile.Birthday,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
