package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinichq/clinichq/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const paymentCols = `id, vn, hncode, total, discount, net, tendered, change, method, cashier_id, paid_at`

func (r *repoPG) Create(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO payment (id, vn, hncode, total, discount, net, tendered, change, method, cashier_id, paid_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.VN, p.HNCode, p.Total, p.Discount, p.Net, p.Tendered, p.Change,
		p.Method, p.CashierID, p.PaidAt)
	return err
}

func (r *repoPG) GetByVN(ctx context.Context, vn string) (*Payment, error) {
	var p Payment
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+paymentCols+` FROM payment WHERE vn = $1`, vn).Scan(
		&p.ID, &p.VN, &p.HNCode, &p.Total, &p.Discount, &p.Net,
		&p.Tendered, &p.Change, &p.Method, &p.CashierID, &p.PaidAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) ListByDate(ctx context.Context, day time.Time) ([]Payment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+paymentCols+` FROM payment WHERE paid_at::date = $1::date ORDER BY paid_at`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.VN, &p.HNCode, &p.Total, &p.Discount, &p.Net,
			&p.Tendered, &p.Change, &p.Method, &p.CashierID, &p.PaidAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *repoPG) RevenueByDate(ctx context.Context, day time.Time) (*DailyRevenue, error) {
	var rev DailyRevenue
	rev.Date = day.Format("2006-01-02")
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(discount), 0), COALESCE(SUM(net), 0)
		FROM payment WHERE paid_at::date = $1::date`, day).Scan(
		&rev.Payments, &rev.Gross, &rev.Discount, &rev.Net)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}
