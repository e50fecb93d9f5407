package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinichq/clinichq/internal/domain/visit"
	"github.com/clinichq/clinichq/internal/platform/db"
	"github.com/clinichq/clinichq/internal/platform/events"
)

// ErrInsufficientTender is returned when the cash handed over does not
// cover the net total.
var ErrInsufficientTender = errors.New("จำนวนเงินที่รับมาไม่เพียงพอ")

// VisitStore is the slice of the visit service the cashier needs.
type VisitStore interface {
	GetByVN(ctx context.Context, vn string) (*visit.Visit, error)
	AdvanceStatus(ctx context.Context, vn, status string) error
}

type Service struct {
	repo   Repository
	visits VisitStore
	runTx  db.TxRunner
	pub    events.Publisher
}

func NewService(repo Repository, visits VisitStore, runTx db.TxRunner, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Service{repo: repo, visits: visits, runTx: runTx, pub: pub}
}

var validMethods = map[string]bool{
	MethodCash:     true,
	MethodTransfer: true,
}

// PaymentRequest is the cashier's settle form. Total and change are
// computed server side; the client's preview amounts are ignored.
type PaymentRequest struct {
	VN        string  `json:"VNO"`
	Discount  float64 `json:"discount"`
	Tendered  float64 `json:"tendered"`
	Method    string  `json:"method"`
	CashierID string  `json:"cashier_id"`
}

// RecordPayment settles a visit: computes the net total from the stored
// line items, validates the tender, writes the payment and moves the visit
// to paid in one transaction.
func (s *Service) RecordPayment(ctx context.Context, req *PaymentRequest) (*Payment, error) {
	if req.VN == "" {
		return nil, fmt.Errorf("vno is required")
	}
	if req.Method == "" {
		req.Method = MethodCash
	}
	if !validMethods[req.Method] {
		return nil, fmt.Errorf("invalid payment method: %s", req.Method)
	}
	if req.Discount < 0 {
		req.Discount = 0
	}

	v, err := s.visits.GetByVN(ctx, req.VN)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("visit %s not found", req.VN)
	}
	if v.Status != visit.StatusAwaitingPayment {
		return nil, fmt.Errorf("visit %s is %s, not awaiting payment", req.VN, v.Status)
	}

	net := NetTotal(v.TotalCost, req.Discount)
	if req.Tendered < net {
		return nil, ErrInsufficientTender
	}

	p := &Payment{
		VN:        v.VN,
		HNCode:    v.HNCode,
		Total:     v.TotalCost,
		Discount:  req.Discount,
		Net:       net,
		Tendered:  req.Tendered,
		Change:    ChangeDue(net, req.Tendered),
		Method:    req.Method,
		CashierID: req.CashierID,
	}
	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		return s.visits.AdvanceStatus(ctx, v.VN, visit.StatusPaid)
	})
	if err != nil {
		return nil, err
	}

	_ = s.pub.Publish(ctx, events.NewEvent(events.TopicPayments, "payment.recorded", map[string]interface{}{
		"VNO":    p.VN,
		"HNCODE": p.HNCode,
		"net":    p.Net,
	}))
	return p, nil
}

func (s *Service) GetPayment(ctx context.Context, vn string) (*Payment, error) {
	return s.repo.GetByVN(ctx, vn)
}

func (s *Service) PaymentsOn(ctx context.Context, day time.Time) ([]Payment, error) {
	return s.repo.ListByDate(ctx, day)
}

func (s *Service) RevenueOn(ctx context.Context, day time.Time) (*DailyRevenue, error) {
	return s.repo.RevenueByDate(ctx, day)
}
