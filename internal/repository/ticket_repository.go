package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Lookups for absent rows
// return (nil, nil) rather than an error.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error)
	List(ctx context.Context, limit int) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository returns a Postgres-backed implementation.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, name, email, subject, description, category, priority, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.Name,
		ticket.Email,
		ticket.Subject,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = ticketSelect + ` WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	const query = ticketSelect + ` WHERE ticket_number=$1`
	return r.fetchSingle(ctx, query, ticketNumber)
}

func (r *ticketRepository) List(ctx context.Context, limit int) ([]domain.Ticket, error) {
	query := ticketSelect + ` ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $1`
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET name=$1, email=$2, subject=$3, description=$4, category=$5,
            priority=$6, status=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		ticket.Name,
		ticket.Email,
		ticket.Subject,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

const ticketSelect = `
        SELECT id, ticket_number, name, email, subject, description, category, priority, status, created_at, updated_at
        FROM tickets`

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, arg), &ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Name,
		&ticket.Email,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}
