package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// ErrNotFound is returned by mutating operations targeting an absent record.
var ErrNotFound = errors.New("record not found")

// memoryTicketRepository is the in-memory twin of the Postgres ticket store,
// used when no DSN is configured and in tests. The pipeline never
// distinguishes the two implementations.
type memoryTicketRepository struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
}

// NewMemoryTicketRepository builds an empty in-memory ticket store.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{tickets: make(map[string]domain.Ticket)}
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket, ok := r.tickets[id]; ok {
		return &ticket, nil
	}
	return nil, nil
}

func (r *memoryTicketRepository) GetByNumber(_ context.Context, ticketNumber string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.TicketNumber == ticketNumber {
			t := ticket
			return &t, nil
		}
	}
	return nil, nil
}

func (r *memoryTicketRepository) List(_ context.Context, limit int) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		result = append(result, ticket)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (r *memoryTicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return ErrNotFound
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

// memoryChatMessageRepository stores transcripts per session in insertion
// order, which keeps replay stable even for equal timestamps.
type memoryChatMessageRepository struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
}

// NewMemoryChatMessageRepository builds an empty in-memory transcript store.
func NewMemoryChatMessageRepository() ChatMessageRepository {
	return &memoryChatMessageRepository{}
}

func (r *memoryChatMessageRepository) Create(_ context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *memoryChatMessageRepository) ListBySession(_ context.Context, sessionID string) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ChatMessage
	for _, msg := range r.messages {
		if msg.SessionID == sessionID {
			result = append(result, msg)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// memoryUserRepository is the in-memory twin of the user store.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

// NewMemoryUserRepository builds an empty in-memory user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}
