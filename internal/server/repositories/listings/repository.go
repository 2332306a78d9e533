package listings

import (
	"context"

	"github.com/outfitai/outfitai/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, l *models.Listing) (*models.Listing, error)
	Get(ctx context.Context, id string) (*models.Listing, error)
	ListAvailable(ctx context.Context) ([]*models.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*models.Listing, error)
	MarkSold(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
