package listings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var columns = []string{"id", "seller_id", "username", "title", "description", "price_cents", "size", "image_url", "storage_key", "sold", "created_at"}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+listings.*RETURNING\s+id,\s*created_at`).
		WithArgs("u-1", "Denim jacket", "barely worn", int64(2500), "M", "http://img", "listings/u-1/k").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("l-1", time.Now()))

	got, err := repo.Create(context.Background(), &models.Listing{
		SellerID: "u-1", Title: "Denim jacket", Description: "barely worn", PriceCents: 2500,
		Size: "M", ImageURL: "http://img", StorageKey: "listings/u-1/k",
	})
	require.NoError(t, err)
	assert.Equal(t, "l-1", got.ID)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+listings\s+l\s+JOIN\s+users\s+u.*WHERE\s+l\.id\s*=\s*\$1`).
		WithArgs("l-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("l-1", "u-1", "alice", "Denim jacket", "", int64(2500), "M", "", "", false, time.Now()))
	mock.ExpectQuery(`WHERE\s+l\.id`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), "l-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Seller)
	assert.Equal(t, int64(2500), got.PriceCents)

	_, err = repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListAvailable(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)WHERE\s+NOT\s+l\.sold\s+ORDER\s+BY\s+l\.created_at\s+DESC`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("l-2", "u-2", "bob", "Boots", "", int64(4000), "42", "", "", false, now).
			AddRow("l-1", "u-1", "alice", "Jacket", "", int64(2500), "M", "", "", false, now.Add(-time.Hour)))

	got, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "l-2", got[0].ID)
}

func TestListBySeller_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+l\.seller_id`).WithArgs("u-1").WillReturnError(errors.New("db down"))

	_, err := repo.ListBySeller(context.Background(), "u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestMarkSoldAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+listings\s+SET\s+sold\s*=\s*TRUE\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("l-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+listings\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("l-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+listings`).
		WithArgs("l-1").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkSold(context.Background(), "l-1"))
	require.NoError(t, repo.Delete(context.Background(), "l-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "l-1"), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
