package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teamtasks/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, teamID int64, title, description string, status domain.TaskStatus, assignedTo *int64, createdBy int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (team_id, title, description, status, assigned_to, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		teamID, title, description, status, assignedTo, createdBy,
	).Scan(&id)
	return id, err
}

// GetByID loads a task scoped by (teamID, taskID) with assignee and creator
// populated. A task under a different team reads as not found.
func (r *TaskRepository) GetByID(ctx context.Context, teamID, taskID int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT t.id, t.team_id, t.title, t.description, t.status, t.created_at,
		        c.id, c.name, c.email,
		        a.id, a.name, a.email
		 FROM tasks t
		 JOIN users c ON c.id = t.created_by
		 LEFT JOIN users a ON a.id = t.assigned_to
		 WHERE t.id = $1 AND t.team_id = $2`,
		taskID, teamID,
	)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns one page of the team's tasks newest first, plus the total
// number of tasks matching the filter.
func (r *TaskRepository) List(ctx context.Context, teamID int64, f domain.TaskFilter) ([]*domain.Task, int, error) {
	conds := []string{"t.team_id = $1"}
	args := []any{teamID}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("t.title ILIKE $%d", len(args)))
	}
	if f.AssignedTo != nil {
		args = append(args, *f.AssignedTo)
		conds = append(conds, fmt.Sprintf("t.assigned_to = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)))
	}
	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks t WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(
		`SELECT t.id, t.team_id, t.title, t.description, t.status, t.created_at,
		        c.id, c.name, c.email,
		        a.id, a.name, a.email
		 FROM tasks t
		 JOIN users c ON c.id = t.created_by
		 LEFT JOIN users a ON a.id = t.assigned_to
		 WHERE %s
		 ORDER BY t.created_at DESC, t.id DESC
		 LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, teamID, taskID int64, title, description string, status domain.TaskStatus, assignedTo *int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, status = $3, assigned_to = $4
		 WHERE id = $5 AND team_id = $6`,
		title, description, status, assignedTo, taskID, teamID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the task. Returns false when no task matched, which covers
// both unknown ids and tasks belonging to another team.
func (r *TaskRepository) Delete(ctx context.Context, teamID, taskID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND team_id = $2`,
		taskID, teamID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t             domain.Task
		assigneeID    *int64
		assigneeName  *string
		assigneeEmail *string
	)
	if err := row.Scan(
		&t.ID, &t.TeamID, &t.Title, &t.Description, &t.Status, &t.CreatedAt,
		&t.CreatedBy.ID, &t.CreatedBy.Name, &t.CreatedBy.Email,
		&assigneeID, &assigneeName, &assigneeEmail,
	); err != nil {
		return nil, err
	}
	if assigneeID != nil {
		t.AssignedTo = &domain.UserRef{ID: *assigneeID, Name: *assigneeName, Email: *assigneeEmail}
	}
	return &t, nil
}
