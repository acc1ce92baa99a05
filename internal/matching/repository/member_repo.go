package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

// MemberRepo reads project membership rows. Membership writes happen inside
// the accept transaction owned by ApplicationRepo.
type MemberRepo struct {
	db *pgxpool.Pool
}

func NewMemberRepo(db *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{db: db}
}

// Find returns the membership for (user, project), or nil when none exists.
func (r *MemberRepo) Find(ctx context.Context, userID, projectID string) (*domain.ProjectMember, error) {
	const q = `select user_id::text, project_id, role, joined_at from project_members where user_id = $1::uuid and project_id = $2;`

	var m domain.ProjectMember
	var roles []string
	err := r.db.QueryRow(ctx, q, userID, projectID).Scan(&m.UserID, &m.ProjectID, &roles, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m.Role = stringsToPositions(roles)
	return &m, nil
}

// ListByProject returns the current members of a project.
func (r *MemberRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	const q = `select user_id::text, project_id, role, joined_at from project_members where project_id = $1 order by joined_at asc;`

	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectMember, 0, 8)
	for rows.Next() {
		var m domain.ProjectMember
		var roles []string
		if err := rows.Scan(&m.UserID, &m.ProjectID, &roles, &m.JoinedAt); err != nil {
			return nil, err
		}
		m.Role = stringsToPositions(roles)
		out = append(out, m)
	}
	return out, rows.Err()
}
