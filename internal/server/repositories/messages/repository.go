package messages

import (
	"context"

	"github.com/outfitai/outfitai/internal/server/models"
)

type Repository interface {
	Save(ctx context.Context, m *models.Message) (*models.Message, error)
	History(ctx context.Context, userA, userB string) ([]*models.Message, error)
	Conversations(ctx context.Context, username string) ([]*models.Conversation, error)
}
