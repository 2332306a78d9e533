package clothes

import (
	"context"

	"github.com/outfitai/outfitai/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.ClothingItem) (*models.ClothingItem, error)
	ListByUser(ctx context.Context, userID, category string) ([]*models.ClothingItem, error)
	Delete(ctx context.Context, id, userID string) (*models.ClothingItem, error)
}
