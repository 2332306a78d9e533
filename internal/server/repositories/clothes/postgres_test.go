package clothes

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

var columns = []string{"id", "user_id", "name", "category", "color", "image_url", "storage_key", "created_at"}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+clothes\s*\(user_id,\s*name,\s*category,\s*color,\s*image_url,\s*storage_key\).*RETURNING\s+id,\s*created_at`).
		WithArgs("u-1", "Blue shirt", "top", "blue", "http://img/1", "wardrobe/u-1/k").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c-1", now))

	got, err := repo.Create(context.Background(), &models.ClothingItem{
		UserID: "u-1", Name: "Blue shirt", Category: "top", Color: "blue",
		ImageURL: "http://img/1", StorageKey: "wardrobe/u-1/k",
	})
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.ID)
	assert.True(t, got.CreatedAt.Equal(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+clothes\s+WHERE\s+user_id\s*=\s*\$1.*ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs("u-1", "top").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("c-2", "u-1", "Red tee", "top", "red", "u2", "k2", now).
			AddRow("c-1", "u-1", "Blue shirt", "top", "blue", "u1", "k1", now.Add(-time.Hour)))

	got, err := repo.ListByUser(context.Background(), "u-1", "top")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c-2", got[0].ID)
	assert.Equal(t, "Blue shirt", got[1].Name)
}

func TestListByUser_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+clothes`).WillReturnError(errors.New("db down"))

	_, err := repo.ListByUser(context.Background(), "u-1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^DELETE\s+FROM\s+clothes\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+RETURNING`).
		WithArgs("c-1", "u-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("c-1", "u-1", "Blue shirt", "top", "blue", "u1", "k1", time.Now()))

	got, err := repo.Delete(context.Background(), "c-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "k1", got.StorageKey)
}

func TestDelete_NotOwnedIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`DELETE\s+FROM\s+clothes`).
		WithArgs("c-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), "c-1", "intruder")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
