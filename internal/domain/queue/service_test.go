package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	entries map[uuid.UUID]*Entry
	nextNum int
}

func newMockRepo() *mockRepo {
	return &mockRepo{entries: make(map[uuid.UUID]*Entry)}
}

func (m *mockRepo) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	m.nextNum++
	e.QueueNumber = m.nextNum
	if e.Status == "" {
		e.Status = StatusWaiting
	}
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return m.entries[id], nil
}

func (m *mockRepo) ListByDate(ctx context.Context, day time.Time) ([]Entry, error) {
	var list []Entry
	for _, e := range m.entries {
		list = append(list, *e)
	}
	return list, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	e, ok := m.entries[id]
	if !ok {
		return fmt.Errorf("queue entry %s not found", id)
	}
	e.Status = status
	return nil
}

func (m *mockRepo) StatsByDate(ctx context.Context, day time.Time) (*Stats, error) {
	var s Stats
	for _, e := range m.entries {
		switch e.Status {
		case StatusWaiting:
			s.Waiting++
		case StatusInProgress:
			s.InProgress++
		case StatusDone:
			s.Done++
		}
		s.Total++
	}
	return &s, nil
}

func TestUpdateStatus_Valid(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	e := &Entry{HNCode: "HN680001"}
	if err := repo.Create(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), e.ID, StatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), e.ID)
	if got.Status != StatusInProgress {
		t.Fatalf("expected %s, got %s", StatusInProgress, got.Status)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	if err := svc.UpdateStatus(context.Background(), uuid.New(), "ปิดแล้ว"); err == nil {
		t.Fatal("expected invalid status error")
	}
}

func TestTodayStats_Counts(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	for _, st := range []string{StatusWaiting, StatusWaiting, StatusInProgress, StatusDone} {
		e := &Entry{HNCode: "HN680001", Status: st}
		if err := repo.Create(context.Background(), e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	stats, err := svc.TodayStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Waiting != 2 || stats.InProgress != 1 || stats.Done != 1 || stats.Total != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
