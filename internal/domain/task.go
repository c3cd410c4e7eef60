package domain

import "time"

type TaskStatus string

const (
	StatusTodo  TaskStatus = "TODO"
	StatusDoing TaskStatus = "DOING"
	StatusDone  TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          int64      `json:"id"`
	TeamID      int64      `json:"teamId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	AssignedTo  *UserRef   `json:"assignedTo"`
	CreatedBy   UserRef    `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Search     string
	AssignedTo *int64
	Status     *TaskStatus
	Limit      int
	Offset     int
}
