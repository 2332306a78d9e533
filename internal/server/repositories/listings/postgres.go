package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/dbx"
	"github.com/outfitai/outfitai/internal/server/models"
)

const selectListing = `SELECT l.id, l.seller_id, u.username, l.title, l.description, l.price_cents,
		        l.size, l.image_url, l.storage_key, l.sold, l.created_at
		 FROM listings l JOIN users u ON u.id = l.seller_id
		 `

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (*models.Listing, error) {
	l := &models.Listing{}
	err := s.Scan(&l.ID, &l.SellerID, &l.Seller, &l.Title, &l.Description, &l.PriceCents,
		&l.Size, &l.ImageURL, &l.StorageKey, &l.Sold, &l.CreatedAt)
	return l, err
}

func (r *PostgresRepository) Create(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	query :=
		`INSERT INTO listings (seller_id, title, description, price_cents, size, image_url, storage_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		l.SellerID, l.Title, l.Description, l.PriceCents, l.Size, l.ImageURL, l.StorageKey).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return l, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Listing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx, selectListing+`WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) ListAvailable(ctx context.Context) ([]*models.Listing, error) {
	return r.list(ctx, selectListing+`WHERE NOT l.sold ORDER BY l.created_at DESC`)
}

func (r *PostgresRepository) ListBySeller(ctx context.Context, sellerID string) ([]*models.Listing, error) {
	return r.list(ctx, selectListing+`WHERE l.seller_id = $1 ORDER BY l.created_at DESC`, sellerID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) MarkSold(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE listings SET sold = TRUE WHERE id = $1`, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM listings WHERE id = $1`, id)
}

// execOne runs a single-row statement and maps zero affected rows to ErrorNotFound.
func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
