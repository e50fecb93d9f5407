package queue

import (
	"context"
	"errors"
	"fmt"
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

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	if e.Status == "" {
		e.Status = StatusWaiting
	}
	if e.QueueDate.IsZero() {
		e.QueueDate = time.Now()
	}
	// Daily running number, scoped to the entry's date.
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(MAX(queue_number), 0) + 1
		FROM queue_entry WHERE queue_date = $1::date`,
		e.QueueDate).Scan(&e.QueueNumber)
	if err != nil {
		return fmt.Errorf("next queue number: %w", err)
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO queue_entry (id, queue_number, hncode, status, queue_date)
		VALUES ($1, $2, $3, $4, $5::date)`,
		e.ID, e.QueueNumber, e.HNCode, e.Status, e.QueueDate)
	return err
}

const entryCols = `q.id, q.queue_number, q.hncode,
	COALESCE(p.prename || p.first_name || ' ' || p.last_name, ''),
	q.status, q.queue_date, q.created_at`

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		SELECT `+entryCols+`
		FROM queue_entry q LEFT JOIN patient p ON p.hncode = q.hncode
		WHERE q.id = $1`, id)
	return scanEntry(row)
}

func (r *repoPG) ListByDate(ctx context.Context, day time.Time) ([]Entry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+entryCols+`
		FROM queue_entry q LEFT JOIN patient p ON p.hncode = q.hncode
		WHERE q.queue_date = $1::date
		ORDER BY q.queue_number`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.QueueNumber, &e.HNCode, &e.PatientName,
			&e.Status, &e.QueueDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE queue_entry SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("queue entry %s not found", id)
	}
	return nil
}

func (r *repoPG) StatsByDate(ctx context.Context, day time.Time) (*Stats, error) {
	var s Stats
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COUNT(*)
		FROM queue_entry WHERE queue_date = $1::date`,
		day, StatusWaiting, StatusInProgress, StatusDone,
	).Scan(&s.Waiting, &s.InProgress, &s.Done, &s.Total)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.QueueNumber, &e.HNCode, &e.PatientName,
		&e.Status, &e.QueueDate, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
