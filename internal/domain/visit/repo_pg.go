package visit

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

const visitCols = `id, vn, queue_id, hncode, status, ucs_card,
	weight, height, temp, bp_sys, bp_dia, rr, pulse, spo2,
	symptom, diagnosis, visit_date, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatment (
			id, vn, queue_id, hncode, status, ucs_card,
			weight, height, temp, bp_sys, bp_dia, rr, pulse, spo2,
			symptom, diagnosis, visit_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17::date)`,
		v.ID, v.VN, v.QueueID, v.HNCode, v.Status, v.UCSCard,
		v.Weight, v.Height, v.Temp, v.BPSys, v.BPDia, v.RR, v.Pulse, v.SpO2,
		v.Symptom, v.Diagnosis, v.VisitDate,
	)
	return err
}

func (r *repoPG) GetByVN(ctx context.Context, vn string) (*Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx,
		`SELECT `+visitCols+` FROM treatment WHERE vn = $1`, vn))
	if err != nil || v == nil {
		return v, err
	}
	items, err := r.ListItems(ctx, vn)
	if err != nil {
		return nil, err
	}
	v.Items = items
	v.TotalCost = Total(items)
	return v, nil
}

func (r *repoPG) ListByHN(ctx context.Context, hn string) ([]Visit, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+visitCols+` FROM treatment WHERE hncode = $1 ORDER BY created_at DESC`, hn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Visit
	for rows.Next() {
		v, err := scanVisitRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *v)
	}
	return list, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE treatment SET
			weight=$2, height=$3, temp=$4, bp_sys=$5, bp_dia=$6,
			rr=$7, pulse=$8, spo2=$9, symptom=$10, diagnosis=$11,
			updated_at=now()
		WHERE vn=$1`,
		v.VN, v.Weight, v.Height, v.Temp, v.BPSys, v.BPDia,
		v.RR, v.Pulse, v.SpO2, v.Symptom, v.Diagnosis,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("visit %s not found", v.VN)
	}
	return nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, vn, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE treatment SET status=$2, updated_at=now() WHERE vn=$1`, vn, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("visit %s not found", vn)
	}
	return nil
}

func (r *repoPG) ReplaceItems(ctx context.Context, vn string, items []LineItem) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM treatment_item WHERE vn = $1`, vn); err != nil {
		return err
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].VN = vn
		if _, err := q.Exec(ctx, `
			INSERT INTO treatment_item (id, vn, kind, code, name, qty, unit_price, amount)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			items[i].ID, vn, items[i].Kind, items[i].Code, items[i].Name,
			items[i].Qty, items[i].UnitPrice, items[i].Amount,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) ListItems(ctx context.Context, vn string) ([]LineItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, vn, kind, code, name, qty, unit_price, amount
		FROM treatment_item WHERE vn = $1 ORDER BY kind, code`, vn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LineItem
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.ID, &it.VN, &it.Kind, &it.Code, &it.Name,
			&it.Qty, &it.UnitPrice, &it.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repoPG) ListVNs(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT vn FROM treatment WHERE vn LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vns []string
	for rows.Next() {
		var vn string
		if err := rows.Scan(&vn); err != nil {
			return nil, err
		}
		vns = append(vns, vn)
	}
	return vns, rows.Err()
}

func (r *repoPG) HasOpenVisit(ctx context.Context, hn string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM treatment WHERE hncode = $1 AND status <> $2
		)`, hn, StatusClosed).Scan(&exists)
	return exists, err
}

func (r *repoPG) UCSUsageCount(ctx context.Context, hn string, from, to time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM treatment
		WHERE hncode = $1 AND ucs_card = 'Y'
		AND visit_date >= $2::date AND visit_date < $3::date`,
		hn, from, to).Scan(&n)
	return n, err
}

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(
		&v.ID, &v.VN, &v.QueueID, &v.HNCode, &v.Status, &v.UCSCard,
		&v.Weight, &v.Height, &v.Temp, &v.BPSys, &v.BPDia, &v.RR, &v.Pulse, &v.SpO2,
		&v.Symptom, &v.Diagnosis, &v.VisitDate, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanVisitRow(rows pgx.Rows) (*Visit, error) {
	var v Visit
	err := rows.Scan(
		&v.ID, &v.VN, &v.QueueID, &v.HNCode, &v.Status, &v.UCSCard,
		&v.Weight, &v.Height, &v.Temp, &v.BPSys, &v.BPDia, &v.RR, &v.Pulse, &v.SpO2,
		&v.Symptom, &v.Diagnosis, &v.VisitDate, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
