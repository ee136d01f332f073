package items

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dstepanenko/storefront/internal/common"
	"github.com/dstepanenko/storefront/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_ReturnsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+items`).
		WithArgs("apple", int64(10), int64(30), int64(25), "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	item := &models.Item{Name: "apple", Count: 10, Original: 30, Discount: 25}
	got, err := repo.Create(context.Background(), item)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*name`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestList_ScansAllRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "count", "original", "discount", "avatar"}).
		AddRow(int64(1), "apple", int64(10), int64(30), int64(25), "").
		AddRow(int64(2), "tilapia", int64(3), int64(50), int64(45), "items/2024/1/2/abc")
	mock.ExpectQuery(`SELECT\s+id,\s*name.*FROM\s+items`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "apple" || got[1].Avatar != "items/2024/1/2/abc" {
		t.Fatalf("unexpected items: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+items\s+SET`).
		WithArgs(int64(5), "apple", int64(10), int64(30), int64(25), "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Item{ID: 5, Name: "apple", Count: 10, Original: 30, Discount: 25})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"absent", 0, common.ErrorNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectExec(`DELETE\s+FROM\s+items`).
				WithArgs(int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := repo.Delete(context.Background(), 5)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Delete = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetTags_ReplacesRelation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tag_of_item`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT\s+INTO\s+tag_of_item`).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+tag_of_item`).
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetTags(context.Background(), 5, []int64{1, 2}); err != nil {
		t.Fatalf("SetTags error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetTags_UnknownTag(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tag_of_item`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT\s+INTO\s+tag_of_item`).
		WithArgs(int64(5), int64(77)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	err := repo.SetTags(context.Background(), 5, []int64{77})
	if !errors.Is(err, common.ErrorUnknownTag) {
		t.Fatalf("want common.ErrorUnknownTag, got %v", err)
	}
}

func TestTagsForItem_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+t\.id,\s*t\.name\s+FROM\s+tag_of_item`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := repo.TagsForItem(context.Background(), 5)
	if err != nil {
		t.Fatalf("TagsForItem error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestAllItemTags(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"item_id", "tag_id", "name"}).
		AddRow(int64(1), int64(2), "fruit").
		AddRow(int64(2), int64(1), "seafood")
	mock.ExpectQuery(`SELECT\s+ti\.item_id,\s*ti\.tag_id,\s*t\.name`).WillReturnRows(rows)

	got, err := repo.AllItemTags(context.Background())
	if err != nil {
		t.Fatalf("AllItemTags error: %v", err)
	}
	if len(got) != 2 || got[0].TagName != "fruit" || got[1].ItemID != 2 {
		t.Fatalf("unexpected relations: %+v", got)
	}
}
