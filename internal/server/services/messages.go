package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/outfitai/outfitai/internal/server/repositories/repomanager"
)

const maxMessageLength = 4000

// MessageService is the durable chat store behind the presence router.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager) *MessageService {
	return &MessageService{db: db, repomanager: m}
}

// Save validates and persists one message. The recipient must be a known user.
func (s *MessageService) Save(ctx context.Context, sender, recipient, body string) (*models.Message, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || strings.TrimSpace(body) == "" {
		return nil, common.Detail(common.ErrorValidation, "Recipient and message are required")
	}
	if len(body) > maxMessageLength {
		return nil, common.Detail(common.ErrorValidation, fmt.Sprintf("Message must be at most %d characters", maxMessageLength))
	}

	if _, err := s.repomanager.Users(s.db).GetByUsername(ctx, recipient); err != nil {
		if common.IsNotFound(err) {
			return nil, common.Detail(common.ErrorNotFound, "User not found")
		}
		return nil, fmt.Errorf("error loading recipient: %w", err)
	}

	m, err := s.repomanager.Messages(s.db).Save(ctx, &models.Message{Sender: sender, Recipient: recipient, Body: body})
	if err != nil {
		return nil, fmt.Errorf("error saving message: %w", err)
	}
	return m, nil
}

// History returns the username/partner exchange oldest first.
func (s *MessageService) History(ctx context.Context, username, partner string) ([]*models.Message, error) {
	msgs, err := s.repomanager.Messages(s.db).History(ctx, username, partner)
	if err != nil {
		return nil, fmt.Errorf("error loading history: %w", err)
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	return msgs, nil
}

func (s *MessageService) Conversations(ctx context.Context, username string) ([]*models.Conversation, error) {
	c, err := s.repomanager.Messages(s.db).Conversations(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error loading conversations: %w", err)
	}
	if c == nil {
		c = []*models.Conversation{}
	}
	return c, nil
}
