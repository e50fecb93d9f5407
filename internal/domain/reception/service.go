// Package reception orchestrates the front-desk flows that touch several
// records at once: receiving a walk-in and checking in an appointment. Both
// create a queue entry and a treatment record in one transaction, with the
// duplicate-visit guard inside the same transaction so two desks cannot
// queue the same patient twice.
package reception

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinichq/clinichq/internal/domain/appointment"
	"github.com/clinichq/clinichq/internal/domain/patient"
	"github.com/clinichq/clinichq/internal/domain/queue"
	"github.com/clinichq/clinichq/internal/domain/visit"
	"github.com/clinichq/clinichq/internal/platform/db"
	"github.com/clinichq/clinichq/internal/platform/events"
)

// ErrAlreadyQueued is returned when the patient has an open visit.
var ErrAlreadyQueued = errors.New("ผู้ป่วยอยู่ในคิวแล้ว กรุณารอปิดการรักษาก่อน")

// ErrQuotaConfirmNeeded is returned when the visit would be the third or
// later insurance usage this month and the operator has not confirmed
// self-pay billing.
var ErrQuotaConfirmNeeded = errors.New("สิทธิบัตรทองครบ 2 ครั้งในเดือนนี้แล้ว ต้องยืนยันชำระเงินเอง")

// lastFreeVisitNotice is shown when the visit is the second (final free)
// insurance usage of the month.
const lastFreeVisitNotice = "เป็นการใช้สิทธิบัตรทองครั้งสุดท้ายของเดือนนี้"

type PatientDirectory interface {
	GetPatient(ctx context.Context, hn string) (*patient.Patient, error)
}

type VisitStore interface {
	CreateVisit(ctx context.Context, v *visit.Visit) error
	HasOpenVisit(ctx context.Context, hn string) (bool, error)
	UCSUsageThisMonth(ctx context.Context, hn string) (int, error)
}

type QueueStore interface {
	Create(ctx context.Context, e *queue.Entry) error
}

type AppointmentBook interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	TodayPending(ctx context.Context) ([]appointment.Appointment, error)
}

type Service struct {
	patients PatientDirectory
	visits   VisitStore
	queue    QueueStore
	appts    AppointmentBook
	runTx    db.TxRunner
	pub      events.Publisher
}

func NewService(patients PatientDirectory, visits VisitStore, q QueueStore,
	appts AppointmentBook, runTx db.TxRunner, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Service{patients: patients, visits: visits, queue: q,
		appts: appts, runTx: runTx, pub: pub}
}

// WalkInRequest is the front desk's intake form.
type WalkInRequest struct {
	HNCode  string   `json:"HNCODE"`
	Weight  *float64 `json:"WEIGHT1"`
	Height  *float64 `json:"HIGHT1"`
	Temp    *float64 `json:"BT1"`
	BPSys   *int     `json:"BP1"`
	BPDia   *int     `json:"BP2"`
	RR      *int     `json:"RR1"`
	Pulse   *int     `json:"PR1"`
	SpO2    *int     `json:"SPO2"`
	Symptom string   `json:"SYMPTOM"`
	// ConfirmSelfPay acknowledges that the visit bills as self-pay when
	// the monthly insurance quota is used up.
	ConfirmSelfPay bool `json:"confirmSelfPay"`
}

// WalkInResult reports what the intake created.
type WalkInResult struct {
	Queue  *queue.Entry `json:"queue"`
	Visit  *visit.Visit `json:"visit"`
	Notice string       `json:"notice,omitempty"`
}

// CreateWalkIn receives a walk-in patient: checks the duplicate-visit guard
// and the insurance quota, then creates the queue entry and treatment record
// atomically.
func (s *Service) CreateWalkIn(ctx context.Context, req *WalkInRequest) (*WalkInResult, error) {
	if req.HNCode == "" {
		return nil, fmt.Errorf("hncode is required")
	}
	p, err := s.patients.GetPatient(ctx, req.HNCode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("patient %s not found", req.HNCode)
	}

	var result WalkInResult
	err = s.runTx(ctx, func(ctx context.Context) error {
		open, err := s.visits.HasOpenVisit(ctx, req.HNCode)
		if err != nil {
			return err
		}
		if open {
			return ErrAlreadyQueued
		}

		ucs := p.UCSCard
		if p.UCSCard == "Y" {
			used, err := s.visits.UCSUsageThisMonth(ctx, req.HNCode)
			if err != nil {
				return err
			}
			switch visitNo := used + 1; {
			case visitNo >= 3:
				if !req.ConfirmSelfPay {
					return ErrQuotaConfirmNeeded
				}
				ucs = "N"
			case visitNo == 2:
				result.Notice = lastFreeVisitNotice
			}
		}

		entry := &queue.Entry{HNCode: req.HNCode}
		if err := s.queue.Create(ctx, entry); err != nil {
			return err
		}
		v := &visit.Visit{
			QueueID: entry.ID,
			HNCode:  req.HNCode,
			UCSCard: ucs,
			Weight:  req.Weight,
			Height:  req.Height,
			Temp:    req.Temp,
			BPSys:   req.BPSys,
			BPDia:   req.BPDia,
			RR:      req.RR,
			Pulse:   req.Pulse,
			SpO2:    req.SpO2,
			Symptom: req.Symptom,
		}
		if err := s.visits.CreateVisit(ctx, v); err != nil {
			return err
		}
		result.Queue = entry
		result.Visit = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishQueueAdded(ctx, &result)
	return &result, nil
}

// CheckInAppointment converts an appointment into a queue entry plus
// treatment record and marks the appointment arrived, all in one
// transaction.
func (s *Service) CheckInAppointment(ctx context.Context, apptID uuid.UUID) (*WalkInResult, error) {
	a, err := s.appts.GetAppointment(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("appointment %s not found", apptID)
	}
	if a.Status != appointment.StatusScheduled && a.Status != appointment.StatusConfirmed {
		return nil, fmt.Errorf("appointment is %s and cannot be checked in", a.Status)
	}
	p, err := s.patients.GetPatient(ctx, a.HNCode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("patient %s not found", a.HNCode)
	}

	var result WalkInResult
	err = s.runTx(ctx, func(ctx context.Context) error {
		open, err := s.visits.HasOpenVisit(ctx, a.HNCode)
		if err != nil {
			return err
		}
		if open {
			return ErrAlreadyQueued
		}
		entry := &queue.Entry{HNCode: a.HNCode}
		if err := s.queue.Create(ctx, entry); err != nil {
			return err
		}
		v := &visit.Visit{
			QueueID: entry.ID,
			HNCode:  a.HNCode,
			UCSCard: p.UCSCard,
			Symptom: a.Reason,
		}
		if err := s.visits.CreateVisit(ctx, v); err != nil {
			return err
		}
		if err := s.appts.UpdateStatus(ctx, apptID, appointment.StatusArrived); err != nil {
			return err
		}
		result.Queue = entry
		result.Visit = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishQueueAdded(ctx, &result)
	return &result, nil
}

// TodayAppointments lists today's appointments still expected at the desk.
func (s *Service) TodayAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	return s.appts.TodayPending(ctx)
}

func (s *Service) publishQueueAdded(ctx context.Context, r *WalkInResult) {
	_ = s.pub.Publish(ctx, events.NewEvent(events.TopicQueue, "queue.added", map[string]interface{}{
		"QUEUE_ID":     r.Queue.ID,
		"QUEUE_NUMBER": r.Queue.QueueNumber,
		"HNCODE":       r.Queue.HNCode,
		"VNO":          r.Visit.VN,
	}))
}
