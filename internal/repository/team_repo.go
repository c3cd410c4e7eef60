package repository

import (
	"context"
	"errors"

	"teamtasks/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeamRepository struct {
	db *pgxpool.Pool
}

func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts the team and its creator membership in one transaction,
// so a team never exists without its creator in the member set.
func (r *TeamRepository) Create(ctx context.Context, name, description string, creatorID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var teamID int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO teams (name, description, creator_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, description, creatorID,
	).Scan(&teamID); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`,
		teamID, creatorID,
	); err != nil {
		return 0, err
	}

	return teamID, tx.Commit(ctx)
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	row := r.db.QueryRow(ctx,
		`SELECT t.id, t.name, t.description, t.created_at, u.id, u.name, u.email
		 FROM teams t
		 JOIN users u ON u.id = t.creator_id
		 WHERE t.id = $1`,
		id,
	)

	var t domain.Team
	if err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.CreatedAt,
		&t.Creator.ID, &t.Creator.Name, &t.Creator.Email,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	members, err := r.loadMembers(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Members = members

	return &t, nil
}

// ListByMember returns all teams the user belongs to, newest first.
func (r *TeamRepository) ListByMember(ctx context.Context, userID int64) ([]*domain.Team, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.name, t.description, t.created_at, u.id, u.name, u.email
		 FROM teams t
		 JOIN users u ON u.id = t.creator_id
		 JOIN team_members m ON m.team_id = t.id
		 WHERE m.user_id = $1
		 ORDER BY t.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.CreatedAt,
			&t.Creator.ID, &t.Creator.Name, &t.Creator.Email,
		); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range teams {
		members, err := r.loadMembers(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Members = members
	}

	return teams, nil
}

// AddMember adds the user to the team's member set. Returns false when the
// user was already a member. The check-and-insert is a single statement, so
// two concurrent adds cannot both succeed.
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		teamID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// RemoveMember removes the user from the member set. Returns false when the
// user was not a member. Creator protection is the handler's concern.
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`,
		teamID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TeamRepository) loadMembers(ctx context.Context, teamID int64) ([]domain.UserRef, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name, u.email
		 FROM team_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.team_id = $1
		 ORDER BY m.added_at`,
		teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.UserRef
	for rows.Next() {
		var m domain.UserRef
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
