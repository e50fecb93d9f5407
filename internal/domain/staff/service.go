package staff

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

func (s *Service) CreateEmployee(ctx context.Context, e *Employee) error {
	if e.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if e.Type == "" {
		return fmt.Errorf("employee type is required")
	}
	e.Active = true
	return s.runTx(ctx, func(ctx context.Context) error {
		codes, err := s.repo.ListCodes(ctx)
		if err != nil {
			return err
		}
		e.Code = seqcode.Next(CodePrefix, CodeWidth, codes)
		return s.repo.Create(ctx, e)
	})
}

func (s *Service) GetEmployee(ctx context.Context, code string) (*Employee, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *Service) ListEmployees(ctx context.Context, empType string) ([]Employee, error) {
	return s.repo.List(ctx, empType)
}

func (s *Service) UpdateEmployee(ctx context.Context, e *Employee) error {
	if e.Code == "" {
		return fmt.Errorf("employee code is required")
	}
	return s.repo.Update(ctx, e)
}

// Deactivate retires an employee from the pick lists without deleting the
// record, so past visits keep their doctor reference.
func (s *Service) Deactivate(ctx context.Context, code string) error {
	e, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("employee %s not found", code)
	}
	e.Active = false
	return s.repo.Update(ctx, e)
}
