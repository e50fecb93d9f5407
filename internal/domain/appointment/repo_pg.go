package appointment

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
	"github.com/clinichq/clinichq/pkg/pagination"
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

const apptCols = `a.id, a.hncode,
	COALESCE(p.prename || p.first_name || ' ' || p.last_name, ''),
	a.appt_date, a.appt_time, a.doctor_code, a.reason, a.status,
	a.created_at, a.updated_at`

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, hncode, appt_date, appt_time, doctor_code, reason, status)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)`,
		a.ID, a.HNCode, a.ApptDate, a.ApptTime, a.DoctorCode, a.Reason, a.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.conn(ctx).QueryRow(ctx, `
		SELECT `+apptCols+`
		FROM appointment a LEFT JOIN patient p ON p.hncode = a.hncode
		WHERE a.id = $1`, id)
	return scanAppt(row)
}

func (r *repoPG) List(ctx context.Context, params pagination.Params) ([]Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+`
		FROM appointment a LEFT JOIN patient p ON p.hncode = a.hncode
		ORDER BY a.appt_date DESC, a.appt_time
		LIMIT $1 OFFSET $2`, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list, err := scanAppts(rows)
	return list, total, err
}

func (r *repoPG) ListByHN(ctx context.Context, hn string) ([]Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+`
		FROM appointment a LEFT JOIN patient p ON p.hncode = a.hncode
		WHERE a.hncode = $1
		ORDER BY a.appt_date DESC, a.appt_time`, hn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppts(rows)
}

func (r *repoPG) ListPendingByDate(ctx context.Context, day time.Time) ([]Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+`
		FROM appointment a LEFT JOIN patient p ON p.hncode = a.hncode
		WHERE a.appt_date = $1::date AND a.status IN ($2, $3)
		ORDER BY a.appt_time`, day, StatusScheduled, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppts(rows)
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET
			appt_date=$2::date, appt_time=$3, doctor_code=$4, reason=$5, updated_at=now()
		WHERE id=$1`,
		a.ID, a.ApptDate, a.ApptTime, a.DoctorCode, a.Reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", a.ID)
	}
	return nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status=$2, updated_at=now() WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.HNCode, &a.PatientName, &a.ApptDate, &a.ApptTime,
		&a.DoctorCode, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAppts(rows pgx.Rows) ([]Appointment, error) {
	var list []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.HNCode, &a.PatientName, &a.ApptDate, &a.ApptTime,
			&a.DoctorCode, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
