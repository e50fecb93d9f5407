package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/clinichq/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	List(ctx context.Context, params pagination.Params) ([]Appointment, int, error)
	ListByHN(ctx context.Context, hn string) ([]Appointment, error)
	// ListPendingByDate returns appointments on the given day still
	// expected to arrive (scheduled or confirmed).
	ListPendingByDate(ctx context.Context, day time.Time) ([]Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
