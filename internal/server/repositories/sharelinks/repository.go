package sharelinks

import (
	"context"

	"github.com/outfitai/outfitai/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, link *models.ShareLink) (*models.ShareLink, error)
	Get(ctx context.Context, code string) (*models.ShareLink, error)
}
