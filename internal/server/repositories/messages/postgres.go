package messages

import (
	"context"
	"fmt"

	"github.com/outfitai/outfitai/internal/dbx"
	"github.com/outfitai/outfitai/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, m *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (sender, recipient, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	if err := r.db.QueryRowContext(ctx, query, m.Sender, m.Recipient, m.Body).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

// History returns both directions of the userA/userB exchange in insertion order.
func (r *PostgresRepository) History(ctx context.Context, userA, userB string) ([]*models.Message, error) {
	query :=
		`SELECT id, sender, recipient, body, created_at
		 FROM messages
		 WHERE (sender = $1 AND recipient = $2) OR (sender = $2 AND recipient = $1)
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.Sender, &m.Recipient, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Conversations returns one row per partner holding the latest message,
// most recent conversation first.
func (r *PostgresRepository) Conversations(ctx context.Context, username string) ([]*models.Conversation, error) {
	query :=
		`SELECT partner, id, sender, recipient, body, created_at FROM (
		     SELECT DISTINCT ON (partner) partner, id, sender, recipient, body, created_at
		     FROM (
		         SELECT CASE WHEN sender = $1 THEN recipient ELSE sender END AS partner,
		                id, sender, recipient, body, created_at
		         FROM messages
		         WHERE sender = $1 OR recipient = $1
		     ) m
		     ORDER BY partner, created_at DESC, id DESC
		 ) latest
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Conversation
	for rows.Next() {
		c := &models.Conversation{}
		m := &c.LastMessage
		if err := rows.Scan(&c.Partner, &m.ID, &m.Sender, &m.Recipient, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
