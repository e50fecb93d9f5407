package staff

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByCode(ctx context.Context, code string) (*Employee, error)
	// List returns employees, optionally filtered by type.
	List(ctx context.Context, empType string) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	ListCodes(ctx context.Context) ([]string, error)
}
