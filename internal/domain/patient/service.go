package patient

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/clinichq/clinichq/internal/platform/db"
	"github.com/clinichq/clinichq/pkg/pagination"
	"github.com/clinichq/clinichq/pkg/seqcode"
)

type Service struct {
	repo  Repository
	runTx db.TxRunner
}

func NewService(repo Repository, runTx db.TxRunner) *Service {
	return &Service{repo: repo, runTx: runTx}
}

var validIDTypes = map[string]bool{
	IDTypeCitizenCard: true,
	IDTypePassport:    true,
}

var citizenIDPattern = regexp.MustCompile(`^[0-9]{13}$`)

// RegisterPatient creates a demographic record and assigns the next hospital
// number for the current Buddhist year. Assignment runs inside a transaction
// so two concurrent registrations cannot mint the same HN.
func (s *Service) RegisterPatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	if p.IDType == "" {
		p.IDType = IDTypeCitizenCard
	}
	if !validIDTypes[p.IDType] {
		return fmt.Errorf("invalid id type: %s", p.IDType)
	}
	if p.IDType == IDTypeCitizenCard && p.IDNo != "" && !citizenIDPattern.MatchString(p.IDNo) {
		return fmt.Errorf("citizen id must be 13 digits")
	}
	if p.SocialCard == "" {
		p.SocialCard = "N"
	}
	if p.UCSCard == "" {
		p.UCSCard = "N"
	}

	if p.IDNo != "" {
		existing, err := s.repo.GetByIDNo(ctx, p.IDNo)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("id number already registered under %s", existing.HNCode)
		}
	}

	return s.runTx(ctx, func(ctx context.Context) error {
		prefix := HNPrefix(time.Now())
		codes, err := s.repo.ListHNCodes(ctx, prefix)
		if err != nil {
			return err
		}
		p.HNCode = seqcode.Next(prefix, 4, codes)
		return s.repo.Create(ctx, p)
	})
}

func (s *Service) GetPatient(ctx context.Context, hn string) (*Patient, error) {
	p, err := s.repo.GetByHN(ctx, hn)
	if err != nil {
		return nil, err
	}
	if p != nil {
		p.ComputeAge(time.Now())
	}
	return p, nil
}

// CheckIDCard reports whether an identity number is already registered, and
// to which patient. Used by the registration screen before creating.
func (s *Service) CheckIDCard(ctx context.Context, idno string) (*Patient, error) {
	p, err := s.repo.GetByIDNo(ctx, idno)
	if err != nil {
		return nil, err
	}
	if p != nil {
		p.ComputeAge(time.Now())
	}
	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.HNCode == "" {
		return fmt.Errorf("hncode is required")
	}
	if p.IDType != "" && !validIDTypes[p.IDType] {
		return fmt.Errorf("invalid id type: %s", p.IDType)
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) ListPatients(ctx context.Context, params pagination.Params) ([]Patient, int, error) {
	list, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	for i := range list {
		list[i].ComputeAge(now)
	}
	return list, total, nil
}

func (s *Service) SearchPatients(ctx context.Context, q string, params pagination.Params) ([]Patient, int, error) {
	if q == "" {
		return s.ListPatients(ctx, params)
	}
	list, total, err := s.repo.Search(ctx, q, params)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	for i := range list {
		list[i].ComputeAge(now)
	}
	return list, total, nil
}
