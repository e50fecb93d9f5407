package billing

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByVN(ctx context.Context, vn string) (*Payment, error)
	ListByDate(ctx context.Context, day time.Time) ([]Payment, error)
	RevenueByDate(ctx context.Context, day time.Time) (*DailyRevenue, error)
}
