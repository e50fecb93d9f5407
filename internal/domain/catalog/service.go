package catalog

import (
	"context"
	"fmt"

	"github.com/clinichq/clinichq/internal/platform/db"
	"github.com/clinichq/clinichq/pkg/seqcode"
)

type Service struct {
	repo  Repository
	runTx db.TxRunner
}

func NewService(repo Repository, runTx db.TxRunner) *Service {
	return &Service{repo: repo, runTx: runTx}
}

func (s *Service) CreateDrug(ctx context.Context, d *Drug) error {
	if d.Name == "" {
		return fmt.Errorf("drug name is required")
	}
	if d.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if d.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		codes, err := s.repo.ListDrugCodes(ctx)
		if err != nil {
			return err
		}
		d.Code = seqcode.Next(DrugPrefix, DrugWidth, codes)
		return s.repo.CreateDrug(ctx, d)
	})
}

func (s *Service) ListDrugs(ctx context.Context) ([]Drug, error) {
	return s.repo.ListDrugs(ctx)
}

func (s *Service) UpdateDrug(ctx context.Context, d *Drug) error {
	if d.Code == "" {
		return fmt.Errorf("drug code is required")
	}
	if d.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if d.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return s.repo.UpdateDrug(ctx, d)
}

func (s *Service) DeleteDrug(ctx context.Context, code string) error {
	return s.repo.DeleteDrug(ctx, code)
}

func (s *Service) CreateProcedure(ctx context.Context, p *Procedure) error {
	if p.Name == "" {
		return fmt.Errorf("procedure name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		codes, err := s.repo.ListProcedureCodes(ctx)
		if err != nil {
			return err
		}
		p.Code = seqcode.Next(ProcPrefix, ProcWidth, codes)
		return s.repo.CreateProcedure(ctx, p)
	})
}

func (s *Service) ListProcedures(ctx context.Context) ([]Procedure, error) {
	return s.repo.ListProcedures(ctx)
}

func (s *Service) UpdateProcedure(ctx context.Context, p *Procedure) error {
	if p.Code == "" {
		return fmt.Errorf("procedure code is required")
	}
	return s.repo.UpdateProcedure(ctx, p)
}

func (s *Service) DeleteProcedure(ctx context.Context, code string) error {
	return s.repo.DeleteProcedure(ctx, code)
}

func (s *Service) CreateProcedureType(ctx context.Context, t *ProcedureType) error {
	if t.Name == "" {
		return fmt.Errorf("procedure type name is required")
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		codes, err := s.repo.ListProcedureTypeCodes(ctx)
		if err != nil {
			return err
		}
		t.Code = seqcode.Next(ProcTypePrefix, ProcTypeWidth, codes)
		return s.repo.CreateProcedureType(ctx, t)
	})
}

func (s *Service) ListProcedureTypes(ctx context.Context) ([]ProcedureType, error) {
	return s.repo.ListProcedureTypes(ctx)
}

func (s *Service) UpdateProcedureType(ctx context.Context, t *ProcedureType) error {
	if t.Code == "" {
		return fmt.Errorf("procedure type code is required")
	}
	return s.repo.UpdateProcedureType(ctx, t)
}

func (s *Service) DeleteProcedureType(ctx context.Context, code string) error {
	return s.repo.DeleteProcedureType(ctx, code)
}

func (s *Service) CreateUserType(ctx context.Context, t *UserType) error {
	if t.Name == "" {
		return fmt.Errorf("user type name is required")
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		codes, err := s.repo.ListUserTypeCodes(ctx)
		if err != nil {
			return err
		}
		t.Code = seqcode.Next(UserTypePrefix, UserTypeWidth, codes)
		return s.repo.CreateUserType(ctx, t)
	})
}

func (s *Service) ListUserTypes(ctx context.Context) ([]UserType, error) {
	return s.repo.ListUserTypes(ctx)
}

func (s *Service) UpdateUserType(ctx context.Context, t *UserType) error {
	if t.Code == "" {
		return fmt.Errorf("user type code is required")
	}
	return s.repo.UpdateUserType(ctx, t)
}

func (s *Service) DeleteUserType(ctx context.Context, code string) error {
	return s.repo.DeleteUserType(ctx, code)
}
