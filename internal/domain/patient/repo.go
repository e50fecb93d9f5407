package patient

import (
	"context"

	"github.com/clinichq/clinichq/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByHN(ctx context.Context, hn string) (*Patient, error)
	GetByIDNo(ctx context.Context, idno string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, params pagination.Params) ([]Patient, int, error)
	Search(ctx context.Context, q string, params pagination.Params) ([]Patient, int, error)
	// ListHNCodes returns every hospital number starting with the given
	// prefix, for running-number assignment inside a transaction.
	ListHNCodes(ctx context.Context, prefix string) ([]string, error)
}
