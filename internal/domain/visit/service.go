package visit

import (
	"context"
	"fmt"
	"time"

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

var validStatuses = map[string]bool{
	StatusActive:          true,
	StatusAwaitingPayment: true,
	StatusPaid:            true,
	StatusClosed:          true,
}

var validItemKinds = map[string]bool{
	ItemDrug:      true,
	ItemProcedure: true,
	ItemLab:       true,
}

// CreateVisit assigns the next visit number for today and inserts the
// record. Reception calls this inside the walk-in or check-in transaction
// so the VN assignment shares atomicity with the queue entry.
func (s *Service) CreateVisit(ctx context.Context, v *Visit) error {
	if v.HNCode == "" {
		return fmt.Errorf("hncode is required")
	}
	if v.Status == "" {
		v.Status = StatusActive
	}
	if !validStatuses[v.Status] {
		return fmt.Errorf("invalid status: %s", v.Status)
	}
	if v.UCSCard == "" {
		v.UCSCard = "N"
	}
	if v.VisitDate.IsZero() {
		v.VisitDate = time.Now()
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		prefix := VNPrefix(v.VisitDate)
		vns, err := s.repo.ListVNs(ctx, prefix)
		if err != nil {
			return err
		}
		v.VN = seqcode.Next(prefix, 3, vns)
		return s.repo.Create(ctx, v)
	})
}

func (s *Service) GetByVN(ctx context.Context, vn string) (*Visit, error) {
	return s.repo.GetByVN(ctx, vn)
}

func (s *Service) History(ctx context.Context, hn string) ([]Visit, error) {
	return s.repo.ListByHN(ctx, hn)
}

// BMI returns the computed body mass index for a visit's recorded weight and
// height, or nil when either is missing.
func (s *Service) BMI(v *Visit) *BMIResult {
	return ComputeBMI(v.Weight, v.Height)
}

// UpdateFindings saves the doctor's working data: vitals, chief complaint,
// diagnosis. Only open visits can be edited.
func (s *Service) UpdateFindings(ctx context.Context, v *Visit) error {
	if v.VN == "" {
		return fmt.Errorf("vno is required")
	}
	current, err := s.repo.GetByVN(ctx, v.VN)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("visit %s not found", v.VN)
	}
	if current.Status == StatusClosed {
		return fmt.Errorf("visit %s is closed", v.VN)
	}
	return s.repo.Update(ctx, v)
}

// SetItems replaces the visit's billable line items. Amounts are computed
// server side from qty and unit price.
func (s *Service) SetItems(ctx context.Context, vn string, items []LineItem) error {
	current, err := s.repo.GetByVN(ctx, vn)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("visit %s not found", vn)
	}
	if current.Status == StatusPaid || current.Status == StatusClosed {
		return fmt.Errorf("visit %s already billed", vn)
	}
	for i := range items {
		if !validItemKinds[items[i].Kind] {
			return fmt.Errorf("invalid item kind: %s", items[i].Kind)
		}
		if items[i].Qty <= 0 {
			return fmt.Errorf("item %s: qty must be positive", items[i].Code)
		}
		if items[i].UnitPrice < 0 {
			return fmt.Errorf("item %s: negative unit price", items[i].Code)
		}
		items[i].Amount = items[i].Qty * items[i].UnitPrice
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		return s.repo.ReplaceItems(ctx, vn, items)
	})
}

// AdvanceStatus moves a visit along its lifecycle. Skipping a step or moving
// backwards is rejected.
func (s *Service) AdvanceStatus(ctx context.Context, vn, newStatus string) error {
	if !validStatuses[newStatus] {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	current, err := s.repo.GetByVN(ctx, vn)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("visit %s not found", vn)
	}
	if !CanTransition(current.Status, newStatus) {
		return fmt.Errorf("cannot move visit from %s to %s", current.Status, newStatus)
	}
	return s.repo.UpdateStatus(ctx, vn, newStatus)
}

// HasOpenVisit reports whether the patient has a visit that has not reached
// closure yet.
func (s *Service) HasOpenVisit(ctx context.Context, hn string) (bool, error) {
	return s.repo.HasOpenVisit(ctx, hn)
}

// UCSUsageThisMonth counts the patient's insurance-billed visits in the
// current calendar month, for the walk-in quota check.
func (s *Service) UCSUsageThisMonth(ctx context.Context, hn string) (int, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)
	return s.repo.UCSUsageCount(ctx, hn, from, to)
}
