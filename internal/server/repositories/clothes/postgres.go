package clothes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/dbx"
	"github.com/outfitai/outfitai/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.ClothingItem) (*models.ClothingItem, error) {
	query :=
		`INSERT INTO clothes (user_id, name, category, color, image_url, storage_key)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.Name, item.Category, item.Color, item.ImageURL, item.StorageKey).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// ListByUser returns the owner's items, newest first. An empty category
// matches everything.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID, category string) ([]*models.ClothingItem, error) {
	query :=
		`SELECT id, user_id, name, category, color, image_url, storage_key, created_at
		 FROM clothes
		 WHERE user_id = $1 AND ($2 = '' OR category = $2)
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, category)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ClothingItem
	for rows.Next() {
		it := &models.ClothingItem{}
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Category, &it.Color, &it.ImageURL, &it.StorageKey, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Delete removes the item only if userID owns it and returns the removed row.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (*models.ClothingItem, error) {
	query :=
		`DELETE FROM clothes
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, category, color, image_url, storage_key, created_at
		 `

	it := &models.ClothingItem{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&it.ID, &it.UserID, &it.Name, &it.Category, &it.Color, &it.ImageURL, &it.StorageKey, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return it, nil
}
