package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// ChatMessageRepository manages chat session transcripts.
type ChatMessageRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
}

type chatMessageRepository struct {
	pool *pgxpool.Pool
}

// NewChatMessageRepository returns a Postgres-backed implementation.
func NewChatMessageRepository(pool *pgxpool.Pool) ChatMessageRepository {
	return &chatMessageRepository{pool: pool}
}

func (r *chatMessageRepository) Create(ctx context.Context, msg *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (session_id, sender, message)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.SessionID,
		msg.Sender,
		msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *chatMessageRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, session_id, sender, message, created_at
        FROM chat_messages WHERE session_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.Sender,
			&msg.Message,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
