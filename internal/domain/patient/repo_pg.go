package patient

import (
	"context"
	"errors"
	"fmt"

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

const patientCols = `id, hncode, prename, first_name, last_name, sex, birth_date,
	idno, id_type, social_card, ucs_card, tel, address,
	blood_group, drug_allergy, disease, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (
			id, hncode, prename, first_name, last_name, sex, birth_date,
			idno, id_type, social_card, ucs_card, tel, address,
			blood_group, drug_allergy, disease
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.HNCode, p.Prename, p.FirstName, p.LastName, p.Sex, p.BirthDate,
		p.IDNo, p.IDType, p.SocialCard, p.UCSCard, p.Tel, p.Address,
		p.BloodGroup, p.DrugAllergy, p.Disease,
	)
	return err
}

func (r *repoPG) GetByHN(ctx context.Context, hn string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE hncode = $1`, hn))
}

func (r *repoPG) GetByIDNo(ctx context.Context, idno string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE idno = $1`, idno))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			prename=$2, first_name=$3, last_name=$4, sex=$5, birth_date=$6,
			idno=$7, id_type=$8, social_card=$9, ucs_card=$10, tel=$11,
			address=$12, blood_group=$13, drug_allergy=$14, disease=$15,
			updated_at=now()
		WHERE hncode=$1`,
		p.HNCode, p.Prename, p.FirstName, p.LastName, p.Sex, p.BirthDate,
		p.IDNo, p.IDType, p.SocialCard, p.UCSCard, p.Tel,
		p.Address, p.BloodGroup, p.DrugAllergy, p.Disease,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient %s not found", p.HNCode)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, params pagination.Params) ([]Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient ORDER BY hncode DESC LIMIT $1 OFFSET $2`,
		params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list, err := scanPatients(rows)
	return list, total, err
}

func (r *repoPG) Search(ctx context.Context, q string, params pagination.Params) ([]Patient, int, error) {
	pattern := "%" + q + "%"
	where := `WHERE hncode ILIKE $1 OR idno ILIKE $1 OR tel ILIKE $1
		OR (first_name || ' ' || last_name) ILIKE $1`
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient `+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient `+where+` ORDER BY hncode DESC LIMIT $2 OFFSET $3`,
		pattern, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list, err := scanPatients(rows)
	return list, total, err
}

func (r *repoPG) ListHNCodes(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT hncode FROM patient WHERE hncode LIKE $1 || '%'`, prefix)
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

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.HNCode, &p.Prename, &p.FirstName, &p.LastName, &p.Sex, &p.BirthDate,
		&p.IDNo, &p.IDType, &p.SocialCard, &p.UCSCard, &p.Tel, &p.Address,
		&p.BloodGroup, &p.DrugAllergy, &p.Disease, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPatients(rows pgx.Rows) ([]Patient, error) {
	var list []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(
			&p.ID, &p.HNCode, &p.Prename, &p.FirstName, &p.LastName, &p.Sex, &p.BirthDate,
			&p.IDNo, &p.IDType, &p.SocialCard, &p.UCSCard, &p.Tel, &p.Address,
			&p.BloodGroup, &p.DrugAllergy, &p.Disease, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
