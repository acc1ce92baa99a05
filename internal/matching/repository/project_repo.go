package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

// ProjectRepo provides persistence for projects and their nested views.
type ProjectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepo(db *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `
id, name, description, difficulty, is_open, github_repo_url,
recruitment_start, recruitment_end, project_start, project_end,
limit_backend, limit_frontend, limit_pm, limit_mobile, limit_ai,
min_proficiency, max_proficiency, owner_id, created_at, updated_at`

func scanProject(row pgx.Row, p *domain.Project) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Difficulty, &p.IsOpen, &p.GithubRepoURL,
		&p.RecruitmentStart, &p.RecruitmentEnd, &p.ProjectStart, &p.ProjectEnd,
		&p.LimitBackend, &p.LimitFrontend, &p.LimitPM, &p.LimitMobile, &p.LimitAI,
		&p.MinProficiency, &p.MaxProficiency, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	const q = `
insert into projects (
  id, name, description, difficulty, is_open, github_repo_url,
  recruitment_start, recruitment_end, project_start, project_end,
  limit_backend, limit_frontend, limit_pm, limit_mobile, limit_ai,
  min_proficiency, max_proficiency, owner_id
)
values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18::uuid)
returning created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.Difficulty, p.IsOpen, p.GithubRepoURL,
		p.RecruitmentStart, p.RecruitmentEnd, p.ProjectStart, p.ProjectEnd,
		p.LimitBackend, p.LimitFrontend, p.LimitPM, p.LimitMobile, p.LimitAI,
		p.MinProficiency, p.MaxProficiency, p.OwnerID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the bare project row without nested members or applications.
func (r *ProjectRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects where id = $1;`

	var p domain.Project
	if err := scanProject(r.db.QueryRow(ctx, q, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetDetail returns a project with its owner summary, members and applications.
func (r *ProjectRepo) GetDetail(ctx context.Context, id string) (*domain.ProjectDetail, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.ProjectDetail{Project: *p}

	if detail.Owner, err = r.ownerSummary(ctx, p.OwnerID); err != nil {
		return nil, err
	}
	if detail.Members, err = r.membersOf(ctx, id); err != nil {
		return nil, err
	}
	if detail.Applications, err = r.applicationsOf(ctx, id); err != nil {
		return nil, err
	}

	detail.MemberCount = len(detail.Members)
	detail.ApplicationCount = len(detail.Applications)
	return detail, nil
}

// List returns projects ordered by creation time, newest first.
// limit <= 0 falls back to a sane page size.
func (r *ProjectRepo) List(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `
select ` + projectColumns + `,
  (select count(*) from project_members m where m.project_id = projects.id),
  (select count(*) from applications a where a.project_id = projects.id)
from projects
order by created_at desc
limit $1 offset $2;
`
	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, limit)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Difficulty, &p.IsOpen, &p.GithubRepoURL,
			&p.RecruitmentStart, &p.RecruitmentEnd, &p.ProjectStart, &p.ProjectEnd,
			&p.LimitBackend, &p.LimitFrontend, &p.LimitPM, &p.LimitMobile, &p.LimitAI,
			&p.MinProficiency, &p.MaxProficiency, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
			&p.MemberCount, &p.ApplicationCount,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListByOwner returns every project owned by the user, with nested views.
func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.ProjectDetail, error) {
	const q = `select ` + projectColumns + ` from projects where owner_id = $1::uuid order by created_at desc;`

	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0, 8)
	for rows.Next() {
		var p domain.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.ProjectDetail, 0, len(projects))
	for _, p := range projects {
		d := domain.ProjectDetail{Project: p}
		if d.Members, err = r.membersOf(ctx, p.ID); err != nil {
			return nil, err
		}
		if d.Applications, err = r.applicationsOf(ctx, p.ID); err != nil {
			return nil, err
		}
		d.MemberCount = len(d.Members)
		d.ApplicationCount = len(d.Applications)
		out = append(out, d)
	}
	return out, nil
}

// ListByMember returns projects the user has been accepted into.
func (r *ProjectRepo) ListByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	const q = `
select ` + projectColumns + `
from projects
join project_members m on m.project_id = projects.id
where m.user_id = $1::uuid
order by m.joined_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 8)
	for rows.Next() {
		var p domain.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
update projects
set name = $2, description = $3, difficulty = $4, is_open = $5, github_repo_url = $6,
    recruitment_start = $7, recruitment_end = $8, project_start = $9, project_end = $10,
    limit_backend = $11, limit_frontend = $12, limit_pm = $13, limit_mobile = $14, limit_ai = $15,
    min_proficiency = $16, max_proficiency = $17, updated_at = now()
where id = $1
returning updated_at;
`
	err := r.db.QueryRow(ctx, q,
		p.ID, p.Name, p.Description, p.Difficulty, p.IsOpen, p.GithubRepoURL,
		p.RecruitmentStart, p.RecruitmentEnd, p.ProjectStart, p.ProjectEnd,
		p.LimitBackend, p.LimitFrontend, p.LimitPM, p.LimitMobile, p.LimitAI,
		p.MinProficiency, p.MaxProficiency,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// SetOpen refreshes the advisory is_open cache.
func (r *ProjectRepo) SetOpen(ctx context.Context, id string, open bool) error {
	const q = `update projects set is_open = $2, updated_at = now() where id = $1 and is_open <> $2;`
	_, err := r.db.Exec(ctx, q, id, open)
	return err
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `delete from projects where id = $1;`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// ListForOpenRefresh returns window fields for every project so the worker
// can recompute stale is_open flags.
func (r *ProjectRepo) ListForOpenRefresh(ctx context.Context) ([]domain.Project, error) {
	const q = `
select id, is_open, recruitment_start, recruitment_end, project_start, project_end
from projects;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 64)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.IsOpen, &p.RecruitmentStart, &p.RecruitmentEnd, &p.ProjectStart, &p.ProjectEnd); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) ownerSummary(ctx context.Context, ownerID string) (*domain.UserSummary, error) {
	const q = `
select id::text, name, email, coalesce(profile_image_url, ''), coalesce(github_id, '')
from users where id = $1::uuid;
`
	var u domain.UserSummary
	err := r.db.QueryRow(ctx, q, ownerID).Scan(&u.ID, &u.Name, &u.Email, &u.ProfileImageURL, &u.GithubID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *ProjectRepo) membersOf(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	const q = `
select m.user_id::text, m.project_id, m.role, m.joined_at,
       u.id::text, u.name, u.email, coalesce(u.profile_image_url, ''), coalesce(u.github_id, '')
from project_members m
join users u on u.id = m.user_id
where m.project_id = $1
order by m.joined_at asc;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectMember, 0, 8)
	for rows.Next() {
		var m domain.ProjectMember
		var roles []string
		var u domain.UserSummary
		if err := rows.Scan(&m.UserID, &m.ProjectID, &roles, &m.JoinedAt,
			&u.ID, &u.Name, &u.Email, &u.ProfileImageURL, &u.GithubID); err != nil {
			return nil, err
		}
		m.Role = stringsToPositions(roles)
		m.User = &u
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) applicationsOf(ctx context.Context, projectID string) ([]domain.Application, error) {
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
