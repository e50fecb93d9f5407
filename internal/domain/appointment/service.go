package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/clinichq/internal/platform/events"
	"github.com/clinichq/clinichq/pkg/pagination"
)

type Service struct {
	repo Repository
	pub  events.Publisher
}

func NewService(repo Repository, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Service{repo: repo, pub: pub}
}

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusConfirmed: true,
	StatusArrived:   true,
	StatusCancelled: true,
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.HNCode == "" {
		return fmt.Errorf("hncode is required")
	}
	if a.ApptDate.IsZero() {
		return fmt.Errorf("appointment date is required")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}
	s.publish(ctx, "appointment.created", a)
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, params pagination.Params) ([]Appointment, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) ListByPatient(ctx context.Context, hn string) ([]Appointment, error) {
	return s.repo.ListByHN(ctx, hn)
}

// TodayPending lists today's appointments still expected at the desk.
func (s *Service) TodayPending(ctx context.Context) ([]Appointment, error) {
	return s.repo.ListPendingByDate(ctx, time.Now())
}

// UpdateAppointment edits date, time, doctor and reason. Arrived and
// cancelled appointments are immutable.
func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	current, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("appointment %s not found", a.ID)
	}
	if current.Status == StatusArrived || current.Status == StatusCancelled {
		return fmt.Errorf("appointment is %s and cannot be edited", current.Status)
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return err
	}
	s.publish(ctx, "appointment.updated", a)
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("appointment %s not found", id)
	}
	if !CanTransition(current.Status, status) {
		return fmt.Errorf("cannot move appointment from %s to %s", current.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.publish(ctx, "appointment.status_changed", map[string]interface{}{
		"APPOINTMENT_ID": id, "STATUS": status,
	})
	return nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("appointment %s not found", id)
	}
	if current.Status == StatusArrived {
		return fmt.Errorf("arrived appointment cannot be deleted")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) publish(ctx context.Context, event string, payload interface{}) {
	_ = s.pub.Publish(ctx, events.NewEvent(events.TopicAppointments, event, payload))
}
