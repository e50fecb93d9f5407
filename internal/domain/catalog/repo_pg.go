package catalog

import (
	"context"
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

// -- drugs --

func (r *repoPG) CreateDrug(ctx context.Context, d *Drug) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO drug (code, name, trade_name, unit, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.Code, d.Name, d.TradeName, d.Unit, d.Price, d.Stock)
	return err
}

func (r *repoPG) ListDrugs(ctx context.Context) ([]Drug, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT code, name, trade_name, unit, price, stock, created_at, updated_at
		FROM drug ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Drug
	for rows.Next() {
		var d Drug
		if err := rows.Scan(&d.Code, &d.Name, &d.TradeName, &d.Unit, &d.Price,
			&d.Stock, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *repoPG) UpdateDrug(ctx context.Context, d *Drug) error {
	return r.exec1(ctx, `
		UPDATE drug SET name=$2, trade_name=$3, unit=$4, price=$5, stock=$6, updated_at=now()
		WHERE code=$1`,
		"drug", d.Code, d.Name, d.TradeName, d.Unit, d.Price, d.Stock)
}

func (r *repoPG) DeleteDrug(ctx context.Context, code string) error {
	return r.exec1(ctx, `DELETE FROM drug WHERE code=$1`, "drug", code)
}

func (r *repoPG) ListDrugCodes(ctx context.Context) ([]string, error) {
	return r.codes(ctx, `SELECT code FROM drug`)
}

// -- procedures --

func (r *repoPG) CreateProcedure(ctx context.Context, p *Procedure) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO procedure (code, name, name_en, type_code, price)
		VALUES ($1, $2, $3, $4, $5)`,
		p.Code, p.Name, p.NameEN, p.TypeCode, p.Price)
	return err
}

func (r *repoPG) ListProcedures(ctx context.Context) ([]Procedure, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT code, name, name_en, type_code, price, created_at, updated_at
		FROM procedure ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Procedure
	for rows.Next() {
		var p Procedure
		if err := rows.Scan(&p.Code, &p.Name, &p.NameEN, &p.TypeCode, &p.Price,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *repoPG) UpdateProcedure(ctx context.Context, p *Procedure) error {
	return r.exec1(ctx, `
		UPDATE procedure SET name=$2, name_en=$3, type_code=$4, price=$5, updated_at=now()
		WHERE code=$1`,
		"procedure", p.Code, p.Name, p.NameEN, p.TypeCode, p.Price)
}

func (r *repoPG) DeleteProcedure(ctx context.Context, code string) error {
	return r.exec1(ctx, `DELETE FROM procedure WHERE code=$1`, "procedure", code)
}

func (r *repoPG) ListProcedureCodes(ctx context.Context) ([]string, error) {
	return r.codes(ctx, `SELECT code FROM procedure`)
}

// -- procedure types --

func (r *repoPG) CreateProcedureType(ctx context.Context, t *ProcedureType) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO procedure_type (code, name) VALUES ($1, $2)`, t.Code, t.Name)
	return err
}

func (r *repoPG) ListProcedureTypes(ctx context.Context) ([]ProcedureType, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT code, name, created_at, updated_at FROM procedure_type ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []ProcedureType
	for rows.Next() {
		var t ProcedureType
		if err := rows.Scan(&t.Code, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *repoPG) UpdateProcedureType(ctx context.Context, t *ProcedureType) error {
	return r.exec1(ctx,
		`UPDATE procedure_type SET name=$2, updated_at=now() WHERE code=$1`,
		"procedure type", t.Code, t.Name)
}

func (r *repoPG) DeleteProcedureType(ctx context.Context, code string) error {
	return r.exec1(ctx, `DELETE FROM procedure_type WHERE code=$1`, "procedure type", code)
}

func (r *repoPG) ListProcedureTypeCodes(ctx context.Context) ([]string, error) {
	return r.codes(ctx, `SELECT code FROM procedure_type`)
}

// -- user types --

func (r *repoPG) CreateUserType(ctx context.Context, t *UserType) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO user_type (code, name) VALUES ($1, $2)`, t.Code, t.Name)
	return err
}

func (r *repoPG) ListUserTypes(ctx context.Context) ([]UserType, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT code, name, created_at, updated_at FROM user_type ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []UserType
	for rows.Next() {
		var t UserType
		if err := rows.Scan(&t.Code, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *repoPG) UpdateUserType(ctx context.Context, t *UserType) error {
	return r.exec1(ctx,
		`UPDATE user_type SET name=$2, updated_at=now() WHERE code=$1`,
		"user type", t.Code, t.Name)
}

func (r *repoPG) DeleteUserType(ctx context.Context, code string) error {
	return r.exec1(ctx, `DELETE FROM user_type WHERE code=$1`, "user type", code)
}

func (r *repoPG) ListUserTypeCodes(ctx context.Context) ([]string, error) {
	return r.codes(ctx, `SELECT code FROM user_type`)
}

// -- shared helpers --

func (r *repoPG) exec1(ctx context.Context, sql, what string, args ...interface{}) error {
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %v not found", what, args[0])
	}
	return nil
}

func (r *repoPG) codes(ctx context.Context, sql string) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, sql)
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
