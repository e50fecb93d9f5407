package staff

import (
	"context"
	"errors"
	"fmt"

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

const empCols = `code, prename, first_name, last_name, emp_type, license_no, tel, active, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, e *Employee) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO employee (code, prename, first_name, last_name, emp_type, license_no, tel, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.Code, e.Prename, e.FirstName, e.LastName, e.Type, e.LicenseNo, e.Tel, e.Active)
	return err
}

func (r *repoPG) GetByCode(ctx context.Context, code string) (*Employee, error) {
	var e Employee
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+empCols+` FROM employee WHERE code = $1`, code).Scan(
		&e.Code, &e.Prename, &e.FirstName, &e.LastName, &e.Type,
		&e.LicenseNo, &e.Tel, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repoPG) List(ctx context.Context, empType string) ([]Employee, error) {
	sql := `SELECT ` + empCols + ` FROM employee WHERE active`
	args := []interface{}{}
	if empType != "" {
		sql += ` AND emp_type = $1`
		args = append(args, empType)
	}
	sql += ` ORDER BY code`
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.Code, &e.Prename, &e.FirstName, &e.LastName, &e.Type,
			&e.LicenseNo, &e.Tel, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, e *Employee) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE employee SET prename=$2, first_name=$3, last_name=$4, emp_type=$5,
			license_no=$6, tel=$7, active=$8, updated_at=now()
		WHERE code=$1`,
		e.Code, e.Prename, e.FirstName, e.LastName, e.Type, e.LicenseNo, e.Tel, e.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found", e.Code)
	}
	return nil
}

func (r *repoPG) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT code FROM employee`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}
