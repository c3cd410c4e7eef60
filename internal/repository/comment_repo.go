package repository

import (
	"context"
	"errors"

	"teamtasks/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, taskID int64, text string, createdBy int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO comments (task_id, text, created_by)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		taskID, text, createdBy,
	).Scan(&id)
	return id, err
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT c.id, c.task_id, c.text, c.created_at, u.id, u.name, u.email
		 FROM comments c
		 JOIN users u ON u.id = c.created_by
		 WHERE c.id = $1`,
		id,
	)

	var cm domain.Comment
	if err := row.Scan(
		&cm.ID, &cm.TaskID, &cm.Text, &cm.CreatedAt,
		&cm.CreatedBy.ID, &cm.CreatedBy.Name, &cm.CreatedBy.Email,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cm, nil
}

// ListByTask returns the task's comments newest first.
func (r *CommentRepository) ListByTask(ctx context.Context, taskID int64) ([]*domain.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.task_id, c.text, c.created_at, u.id, u.name, u.email
		 FROM comments c
		 JOIN users u ON u.id = c.created_by
		 WHERE c.task_id = $1
		 ORDER BY c.created_at DESC, c.id DESC`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var cm domain.Comment
		if err := rows.Scan(
			&cm.ID, &cm.TaskID, &cm.Text, &cm.CreatedAt,
			&cm.CreatedBy.ID, &cm.CreatedBy.Name, &cm.CreatedBy.Email,
		); err != nil {
			return nil, err
		}
		comments = append(comments, &cm)
	}
	return comments, rows.Err()
}
