package ws

import (
	"encoding/json"
	"sync"

	"teamtasks/internal/logger"
)

// Hub fans task and comment events out to connected clients, keyed by team.
// Delivery is best effort: a slow client misses events rather than blocking
// the publishing handler.
type Hub struct {
	mu    sync.RWMutex
	teams map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{teams: make(map[int64]map[*Client]struct{})}
}

// Subscribe registers the client for every team it belongs to.
func (h *Hub) Subscribe(c *Client, teamIDs []int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.teams = teamIDs
	for _, id := range teamIDs {
		if h.teams[id] == nil {
			h.teams[id] = make(map[*Client]struct{})
		}
		h.teams[id][c] = struct{}{}
	}
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, id := range c.teams {
		delete(h.teams[id], c)
		if len(h.teams[id]) == 0 {
			delete(h.teams, id)
		}
	}
}

// Publish sends an event to every subscriber of the team.
func (h *Hub) Publish(teamID int64, eventType string, data any) {
	msg, err := json.Marshal(Event{Type: eventType, TeamID: teamID, Data: data})
	if err != nil {
		logger.Error("ws: marshal event", "type", eventType, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.teams[teamID] {
		select {
		case c.Send <- msg:
		default:
			// send buffer full, drop for this client
		}
	}
}

// subscriberCount is used by tests.
func (h *Hub) subscriberCount(teamID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.teams[teamID])
}
