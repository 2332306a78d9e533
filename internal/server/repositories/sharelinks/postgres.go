package sharelinks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
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

// Create stores link. A code collision yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, link *models.ShareLink) (*models.ShareLink, error) {
	query :=
		`INSERT INTO share_links (code, user_id, clothes)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, link.Code, link.UserID, link.Clothes).Scan(&link.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return link, nil
}

func (r *PostgresRepository) Get(ctx context.Context, code string) (*models.ShareLink, error) {
	query :=
		`SELECT s.code, s.user_id, u.username, s.clothes, s.created_at
		 FROM share_links s JOIN users u ON u.id = s.user_id
		 WHERE s.code = $1
		 `

	l := &models.ShareLink{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&l.Code, &l.UserID, &l.Owner, &l.Clothes, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return l, nil
}
