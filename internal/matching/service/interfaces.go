package service

import (
	"context"
	"time"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/matching/engine"
)

// Storage interfaces are defined here, next to their consumers, and
// implemented by the pgx repositories. Tests substitute in-memory fakes.

type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	GetDetail(ctx context.Context, id string) (*domain.ProjectDetail, error)
	List(ctx context.Context, limit, offset int) ([]domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ProjectDetail, error)
	ListByMember(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) (*domain.Project, error)
	SetOpen(ctx context.Context, id string, open bool) error
	Delete(ctx context.Context, id string) (bool, error)
	ListForOpenRefresh(ctx context.Context) ([]domain.Project, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, a *domain.Application) (*domain.Application, error)
	Find(ctx context.Context, userID, projectID string) (*domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, userID, projectID string, status domain.ApplicationStatus) (*domain.Application, error)
	Delete(ctx context.Context, userID, projectID string) (bool, error)
	AcceptPending(ctx context.Context, project *domain.Project, app *domain.Application) (*domain.Application, error)
	EnsureMember(ctx context.Context, userID, projectID string, roles []domain.Position) error
}

type MemberStore interface {
	Find(ctx context.Context, userID, projectID string) (*domain.ProjectMember, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
}

// UserReader supplies the read-only user state the engine consumes. The user
// record itself is owned by the users feature.
type UserReader interface {
	GetApplicant(ctx context.Context, userID string) (engine.Applicant, error)
}

// DashboardCache is a best-effort read cache; a nil cache disables caching.
type DashboardCache interface {
	Get(ctx context.Context, userID string) (*domain.Dashboard, bool)
	Set(ctx context.Context, userID string, d *domain.Dashboard, ttl time.Duration)
	Invalidate(ctx context.Context, userIDs ...string)
}
