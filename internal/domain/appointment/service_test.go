package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/clinichq/pkg/pagination"
)

type mockRepo struct {
	appts map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	cp := *a
	m.appts[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) List(ctx context.Context, params pagination.Params) ([]Appointment, int, error) {
	var list []Appointment
	for _, a := range m.appts {
		list = append(list, *a)
	}
	return list, len(list), nil
}

func (m *mockRepo) ListByHN(ctx context.Context, hn string) ([]Appointment, error) {
	var list []Appointment
	for _, a := range m.appts {
		if a.HNCode == hn {
			list = append(list, *a)
		}
	}
	return list, nil
}

func (m *mockRepo) ListPendingByDate(ctx context.Context, day time.Time) ([]Appointment, error) {
	var list []Appointment
	for _, a := range m.appts {
		sameDay := a.ApptDate.Format("2006-01-02") == day.Format("2006-01-02")
		if sameDay && (a.Status == StatusScheduled || a.Status == StatusConfirmed) {
			list = append(list, *a)
		}
	}
	return list, nil
}

func (m *mockRepo) Update(ctx context.Context, a *Appointment) error {
	existing, ok := m.appts[a.ID]
	if !ok {
		return fmt.Errorf("appointment %s not found", a.ID)
	}
	existing.ApptDate = a.ApptDate
	existing.ApptTime = a.ApptTime
	existing.DoctorCode = a.DoctorCode
	existing.Reason = a.Reason
	return nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	a, ok := m.appts[id]
	if !ok {
		return fmt.Errorf("appointment %s not found", id)
	}
	a.Status = status
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.appts[id]; !ok {
		return fmt.Errorf("appointment %s not found", id)
	}
	delete(m.appts, id)
	return nil
}

func newAppt() *Appointment {
	return &Appointment{
		HNCode:     "HN680001",
		ApptDate:   time.Now(),
		ApptTime:   "09:30",
		DoctorCode: "EMP001",
		Reason:     "ตรวจติดตามอาการ",
	}
}

func TestCreateAppointment_DefaultsScheduled(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	a := newAppt()
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Fatalf("expected %s, got %s", StatusScheduled, a.Status)
	}
}

func TestCreateAppointment_RequiresFields(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	if err := svc.CreateAppointment(context.Background(), &Appointment{ApptDate: time.Now()}); err == nil {
		t.Fatal("expected error for missing hncode")
	}
	if err := svc.CreateAppointment(context.Background(), &Appointment{HNCode: "HN680001"}); err == nil {
		t.Fatal("expected error for missing date")
	}
}

func TestUpdateStatus_ConfirmThenArrive(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	a := newAppt()
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), a.ID, StatusArrived); err != nil {
		t.Fatalf("arrive: %v", err)
	}
}

func TestUpdateStatus_RejectsFromTerminal(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	a := newAppt()
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), a.ID, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), a.ID, StatusConfirmed); err == nil {
		t.Fatal("expected error reopening cancelled appointment")
	}
}

func TestUpdateAppointment_ArrivedImmutable(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	a := newAppt()
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.appts[a.ID].Status = StatusArrived
	a.Reason = "เปลี่ยนเหตุผล"
	if err := svc.UpdateAppointment(context.Background(), a); err == nil {
		t.Fatal("expected error editing arrived appointment")
	}
}

func TestTodayPending_FiltersStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	for _, st := range []string{StatusScheduled, StatusConfirmed, StatusCancelled, StatusArrived} {
		a := newAppt()
		if err := svc.CreateAppointment(context.Background(), a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		repo.appts[a.ID].Status = st
	}
	list, err := svc.TodayPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(list))
	}
}

func TestDeleteAppointment_ArrivedRejected(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	a := newAppt()
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.appts[a.ID].Status = StatusArrived
	if err := svc.DeleteAppointment(context.Background(), a.ID); err == nil {
		t.Fatal("expected error deleting arrived appointment")
	}
}
