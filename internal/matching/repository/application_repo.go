package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/matching/engine"
)

// ApplicationRepo provides persistence for applications and the accept
// transition that promotes an applicant to member.
type ApplicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `
user_id::text, project_id, applied_position, status, coalesce(cover_letter, ''), created_at, updated_at`

func scanApplication(row pgx.Row, a *domain.Application) error {
	var positions []string
	if err := row.Scan(&a.UserID, &a.ProjectID, &positions, &a.Status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return err
	}
	a.AppliedPosition = stringsToPositions(positions)
	return nil
}

// Create inserts a PENDING application. The unique (user_id, project_id)
// constraint is the authoritative duplicate guard; a violation maps to
// ErrAlreadyApplied so a lost race surfaces as a conflict, not a 500.
func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	const q = `
insert into applications (user_id, project_id, applied_position, status, cover_letter)
values ($1::uuid, $2, $3, $4, nullif($5, ''))
returning created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q,
		a.UserID, a.ProjectID, positionsToStrings(a.AppliedPosition), a.Status, a.CoverLetter,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyApplied
		}
		return nil, err
	}
	return a, nil
}

// Find returns the application for (user, project), or nil when none exists.
func (r *ApplicationRepo) Find(ctx context.Context, userID, projectID string) (*domain.Application, error) {
	const q = `select ` + applicationColumns + ` from applications where user_id = $1::uuid and project_id = $2;`

	var a domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, q, userID, projectID), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListByUser returns the user's applications, each carrying its parent
// project's summary view.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	const q = `
select a.user_id::text, a.project_id, a.applied_position, a.status, coalesce(a.cover_letter, ''),
       a.created_at, a.updated_at,
       p.id, p.name, p.description, p.difficulty, p.is_open, p.github_repo_url,
       p.recruitment_start, p.recruitment_end, p.project_start, p.project_end,
       p.limit_backend, p.limit_frontend, p.limit_pm, p.limit_mobile, p.limit_ai,
       p.min_proficiency, p.max_proficiency, p.owner_id, p.created_at, p.updated_at
from applications a
join projects p on p.id = a.project_id
where a.user_id = $1::uuid
order by a.created_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Application, 0, 8)
	for rows.Next() {
		var a domain.Application
		var positions []string
		var p domain.Project
		if err := rows.Scan(&a.UserID, &a.ProjectID, &positions, &a.Status, &a.CoverLetter,
			&a.CreatedAt, &a.UpdatedAt,
			&p.ID, &p.Name, &p.Description, &p.Difficulty, &p.IsOpen, &p.GithubRepoURL,
			&p.RecruitmentStart, &p.RecruitmentEnd, &p.ProjectStart, &p.ProjectEnd,
			&p.LimitBackend, &p.LimitFrontend, &p.LimitPM, &p.LimitMobile, &p.LimitAI,
			&p.MinProficiency, &p.MaxProficiency, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.AppliedPosition = stringsToPositions(positions)
		a.Project = &p
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListByProject returns every application for a project with applicant
// summaries, for the owner's review screen.
func (r *ApplicationRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Application, error) {
	const q = `
select a.user_id::text, a.project_id, a.applied_position, a.status, coalesce(a.cover_letter, ''),
       a.created_at, a.updated_at,
       u.id::text, u.name, u.email, coalesce(u.profile_image_url, ''), coalesce(u.github_id, '')
from applications a
join users u on u.id = a.user_id
where a.project_id = $1
order by a.created_at asc;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Application, 0, 8)
	for rows.Next() {
		var a domain.Application
		var positions []string
		var u domain.UserSummary
		if err := rows.Scan(&a.UserID, &a.ProjectID, &positions, &a.Status, &a.CoverLetter,
			&a.CreatedAt, &a.UpdatedAt,
			&u.ID, &u.Name, &u.Email, &u.ProfileImageURL, &u.GithubID); err != nil {
			return nil, err
		}
		a.AppliedPosition = stringsToPositions(positions)
		a.User = &u
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus transitions the application status without side effects.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, userID, projectID string, status domain.ApplicationStatus) (*domain.Application, error) {
	const q = `
update applications
set status = $3, updated_at = now()
where user_id = $1::uuid and project_id = $2
returning ` + applicationColumns + `;
`
	var a domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, q, userID, projectID, status), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes the application row entirely (withdrawal).
func (r *ApplicationRepo) Delete(ctx context.Context, userID, projectID string) (bool, error) {
	const q = `delete from applications where user_id = $1::uuid and project_id = $2;`
	ct, err := r.db.Exec(ctx, q, userID, projectID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// AcceptPending performs the accept transition as one transaction: it locks
// the project row to serialize accepts per project, re-validates capacity
// against the members visible inside the transaction, flips the status and
// inserts the membership. The capacity re-check closes the window between the
// application-time check and the member insert.
func (r *ApplicationRepo) AcceptPending(ctx context.Context, project *domain.Project, app *domain.Application) (*domain.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `select 1 from projects where id = $1 for update;`, project.ID); err != nil {
		return nil, err
	}

	members, err := membersForUpdate(ctx, tx, project.ID)
	if err != nil {
		return nil, err
	}
	for _, pos := range app.AppliedPosition {
		if !engine.HasRoom(project, members, pos) {
			return nil, &positionFullError{position: pos}
		}
	}

	var updated domain.Application
	const upd = `
update applications
set status = 'ACCEPTED', updated_at = now()
where user_id = $1::uuid and project_id = $2 and status = 'PENDING'
returning ` + applicationColumns + `;
`
	if err := scanApplication(tx.QueryRow(ctx, upd, app.UserID, app.ProjectID), &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidState
		}
		return nil, err
	}

	const ins = `
insert into project_members (user_id, project_id, role)
values ($1::uuid, $2, $3)
on conflict (user_id, project_id) do nothing;
`
	if _, err := tx.Exec(ctx, ins, app.UserID, app.ProjectID, positionsToStrings(app.AppliedPosition)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

// EnsureMember inserts the membership if it is missing. Used by the
// idempotent re-accept path; never creates a duplicate.
func (r *ApplicationRepo) EnsureMember(ctx context.Context, userID, projectID string, roles []domain.Position) error {
	const q = `
insert into project_members (user_id, project_id, role)
values ($1::uuid, $2, $3)
on conflict (user_id, project_id) do nothing;
`
	_, err := r.db.Exec(ctx, q, userID, projectID, positionsToStrings(roles))
	return err
}

func membersForUpdate(ctx context.Context, tx pgx.Tx, projectID string) ([]domain.ProjectMember, error) {
	const q = `select user_id::text, project_id, role, joined_at from project_members where project_id = $1;`

	rows, err := tx.Query(ctx, q, projectID)
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

// positionFullError wraps domain.ErrPositionFull with the offending position.
type positionFullError struct {
	position domain.Position
}

func (e *positionFullError) Error() string {
	return string(e.position) + " is full"
}

func (e *positionFullError) Unwrap() error {
	return domain.ErrPositionFull
}
