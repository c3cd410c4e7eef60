package ws

import (
	"encoding/json"
	"testing"
)

func testClient() *Client {
	return &Client{Send: make(chan []byte, 4)}
}

func TestHubPublishReachesTeamSubscribers(t *testing.T) {
	hub := NewHub()

	alpha := testClient()
	beta := testClient()
	hub.Subscribe(alpha, []int64{1})
	hub.Subscribe(beta, []int64{2})

	hub.Publish(1, "task.created", map[string]any{"id": 5})

	select {
	case msg := <-alpha.Send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != "task.created" || ev.TeamID != 1 {
			t.Fatalf("unexpected event: %+v", ev)
		}
	default:
		t.Fatal("subscriber of team 1 got no event")
	}

	select {
	case <-beta.Send:
		t.Fatal("subscriber of team 2 got an event for team 1")
	default:
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	c := testClient()
	hub.Subscribe(c, []int64{1, 2})
	if got := hub.subscriberCount(1); got != 1 {
		t.Fatalf("subscriberCount(1) = %d, want 1", got)
	}

	hub.Unsubscribe(c)
	if got := hub.subscriberCount(1); got != 0 {
		t.Fatalf("subscriberCount(1) after unsubscribe = %d, want 0", got)
	}
	if got := hub.subscriberCount(2); got != 0 {
		t.Fatalf("subscriberCount(2) after unsubscribe = %d, want 0", got)
	}
}

func TestHubPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()

	c := &Client{Send: make(chan []byte, 1)}
	hub.Subscribe(c, []int64{1})

	// The second publish must not block even though nobody is reading.
	hub.Publish(1, "task.created", nil)
	hub.Publish(1, "task.updated", nil)

	if len(c.Send) != 1 {
		t.Fatalf("expected exactly one buffered message, got %d", len(c.Send))
	}
}
