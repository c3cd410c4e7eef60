package ws

// Event is pushed to every client subscribed to the team it happened in.
// Type is one of task.created, task.updated, task.deleted, comment.created.
type Event struct {
	Type   string `json:"type"`
	TeamID int64  `json:"teamId"`
	Data   any    `json:"data"`
}
