package visit

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByVN(ctx context.Context, vn string) (*Visit, error)
	ListByHN(ctx context.Context, hn string) ([]Visit, error)
	Update(ctx context.Context, v *Visit) error
	UpdateStatus(ctx context.Context, vn, status string) error
	ReplaceItems(ctx context.Context, vn string, items []LineItem) error
	ListItems(ctx context.Context, vn string) ([]LineItem, error)
	// ListVNs returns visit numbers with the given prefix, for running
	// number assignment inside a transaction.
	ListVNs(ctx context.Context, prefix string) ([]string, error)
	// HasOpenVisit reports whether the patient has any visit not yet
	// closed. The walk-in guard runs this inside the same transaction as
	// the create so two desks cannot both pass the check.
	HasOpenVisit(ctx context.Context, hn string) (bool, error)
	// UCSUsageCount counts insurance-billed visits for the patient inside
	// the given window.
	UCSUsageCount(ctx context.Context, hn string, from, to time.Time) (int, error)
}
