package catalog

import "context"

type Repository interface {
	CreateDrug(ctx context.Context, d *Drug) error
	ListDrugs(ctx context.Context) ([]Drug, error)
	UpdateDrug(ctx context.Context, d *Drug) error
	DeleteDrug(ctx context.Context, code string) error
	ListDrugCodes(ctx context.Context) ([]string, error)

	CreateProcedure(ctx context.Context, p *Procedure) error
	ListProcedures(ctx context.Context) ([]Procedure, error)
	UpdateProcedure(ctx context.Context, p *Procedure) error
	DeleteProcedure(ctx context.Context, code string) error
	ListProcedureCodes(ctx context.Context) ([]string, error)

	CreateProcedureType(ctx context.Context, t *ProcedureType) error
	ListProcedureTypes(ctx context.Context) ([]ProcedureType, error)
	UpdateProcedureType(ctx context.Context, t *ProcedureType) error
	DeleteProcedureType(ctx context.Context, code string) error
	ListProcedureTypeCodes(ctx context.Context) ([]string, error)

	CreateUserType(ctx context.Context, t *UserType) error
	ListUserTypes(ctx context.Context) ([]UserType, error)
	UpdateUserType(ctx context.Context, t *UserType) error
	DeleteUserType(ctx context.Context, code string) error
	ListUserTypeCodes(ctx context.Context) ([]string, error)
}
