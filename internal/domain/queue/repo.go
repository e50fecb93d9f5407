package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create assigns the next daily queue number and inserts the entry.
	// Callers must run it inside a transaction; the max+1 read and the
	// insert have to be atomic or two desks can hand out the same number.
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListByDate(ctx context.Context, day time.Time) ([]Entry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	StatsByDate(ctx context.Context, day time.Time) (*Stats, error)
}
