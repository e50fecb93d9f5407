package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func newTestHub() *Hub {
	return NewHub(zerolog.New(os.Stderr))
}

func newTestClient(topics ...string) *Client {
	return &Client{
		ID:     "test",
		Topics: topics,
		Send:   make(chan []byte, 8),
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newTestHub()
	client := newTestClient(TopicQueue)
	hub.Register(client)

	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}
	if hub.TopicCount(TopicQueue) != 1 {
		t.Fatalf("expected 1 subscriber on %s, got %d", TopicQueue, hub.TopicCount(TopicQueue))
	}

	hub.Broadcast(TopicQueue, NewEvent(TopicQueue, "queue.updated", map[string]int{"queue_number": 5}))

	select {
	case raw := <-client.Send:
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != "queue.updated" {
			t.Errorf("expected queue.updated, got %s", ev.Type)
		}
		if ev.Topic != TopicQueue {
			t.Errorf("expected topic %s, got %s", TopicQueue, ev.Topic)
		}
	default:
		t.Fatal("expected event delivered to subscriber")
	}
}

func TestHub_TopicIsolation(t *testing.T) {
	hub := newTestHub()
	queueClient := newTestClient(TopicQueue)
	apptClient := newTestClient(TopicAppointments)
	hub.Register(queueClient)
	hub.Register(apptClient)

	hub.Broadcast(TopicQueue, NewEvent(TopicQueue, "queue.updated", nil))

	if len(queueClient.Send) != 1 {
		t.Errorf("queue subscriber should receive event, got %d", len(queueClient.Send))
	}
	if len(apptClient.Send) != 0 {
		t.Errorf("appointment subscriber should not receive queue events, got %d", len(apptClient.Send))
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := newTestHub()
	client := newTestClient(TopicQueue)
	hub.Register(client)
	hub.Unregister(client)

	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
	if hub.TopicCount(TopicQueue) != 0 {
		t.Errorf("expected 0 subscribers, got %d", hub.TopicCount(TopicQueue))
	}

	// Unregistering twice must not panic on the closed channel.
	hub.Unregister(client)
}

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	hub := newTestHub()
	client := newTestClient()
	hub.Register(client)

	hub.ProcessMessage(client, ClientMessage{Action: "subscribe", Topics: []string{TopicPayments}})
	if hub.TopicCount(TopicPayments) != 1 {
		t.Fatalf("expected subscription to %s", TopicPayments)
	}

	hub.ProcessMessage(client, ClientMessage{Action: "unsubscribe", Topics: []string{TopicPayments}})
	if hub.TopicCount(TopicPayments) != 0 {
		t.Fatal("expected unsubscribe to remove client")
	}
	if len(client.Topics) != 0 {
		t.Errorf("expected client topics cleared, got %v", client.Topics)
	}
}

func TestHub_SlowClientSkipped(t *testing.T) {
	hub := newTestHub()
	client := &Client{ID: "slow", Topics: []string{TopicQueue}, Send: make(chan []byte)} // no buffer
	hub.Register(client)

	// Must not block even though nobody reads from Send.
	hub.Broadcast(TopicQueue, NewEvent(TopicQueue, "queue.updated", nil))
}

func TestHub_PublishImplementsPublisher(t *testing.T) {
	hub := newTestHub()
	var _ Publisher = hub

	client := newTestClient(TopicAppointments)
	hub.Register(client)

	if err := hub.Publish(context.Background(), NewEvent(TopicAppointments, "appointment.checked_in", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.Send) != 1 {
		t.Error("expected published event to reach subscriber")
	}
}
