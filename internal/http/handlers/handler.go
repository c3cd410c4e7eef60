package handlers

import (
	"context"
	"strconv"

	"teamtasks/internal/domain"
	"teamtasks/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store interfaces cover exactly what the handlers use, so tests can swap in
// in-memory fakes. The concrete implementations live in internal/repository.

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type TeamStore interface {
	Create(ctx context.Context, name, description string, creatorID int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	ListByMember(ctx context.Context, userID int64) ([]*domain.Team, error)
	AddMember(ctx context.Context, teamID, userID int64) (bool, error)
	RemoveMember(ctx context.Context, teamID, userID int64) (bool, error)
}

type TaskStore interface {
	Create(ctx context.Context, teamID int64, title, description string, status domain.TaskStatus, assignedTo *int64, createdBy int64) (int64, error)
	GetByID(ctx context.Context, teamID, taskID int64) (*domain.Task, error)
	List(ctx context.Context, teamID int64, f domain.TaskFilter) ([]*domain.Task, int, error)
	Update(ctx context.Context, teamID, taskID int64, title, description string, status domain.TaskStatus, assignedTo *int64) error
	Delete(ctx context.Context, teamID, taskID int64) (bool, error)
}

type CommentStore interface {
	Create(ctx context.Context, taskID int64, text string, createdBy int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]*domain.Comment, error)
}

// Notifier pushes events to clients subscribed to a team. Optional; a nil
// notifier disables pushes.
type Notifier interface {
	Publish(teamID int64, eventType string, data any)
}

type Handler struct {
	DB       *pgxpool.Pool
	Users    UserStore
	Teams    TeamStore
	Tasks    TaskStore
	Comments CommentStore
	Events   Notifier
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:       db,
		Users:    repository.NewUserRepository(db),
		Teams:    repository.NewTeamRepository(db),
		Tasks:    repository.NewTaskRepository(db),
		Comments: repository.NewCommentRepository(db),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

// pathID parses a numeric path parameter. Malformed ids read the same as
// unknown ones, so callers treat ok=false as not found.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) notify(teamID int64, eventType string, data any) {
	if h.Events != nil {
		h.Events.Publish(teamID, eventType, data)
	}
}
