package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinichq/clinichq/internal/platform/events"
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
	StatusWaiting:    true,
	StatusInProgress: true,
	StatusDone:       true,
}

func (s *Service) TodayQueue(ctx context.Context) ([]Entry, error) {
	return s.repo.ListByDate(ctx, time.Now())
}

func (s *Service) TodayStats(ctx context.Context) (*Stats, error) {
	return s.repo.StatsByDate(ctx, time.Now())
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid queue status: %s", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	_ = s.pub.Publish(ctx, events.NewEvent(events.TopicQueue, "queue.status_changed", map[string]interface{}{
		"queue_id": id,
		"status":   status,
	}))
	return nil
}
