package service

import (
	"context"
	"time"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

const dashboardTTL = 30 * time.Second

// DashboardService composes per-user read-side views. Pure join over the
// current persisted state; no eligibility or capacity logic.
type DashboardService struct {
	projects     ProjectStore
	applications ApplicationStore
	cache        DashboardCache
}

func NewDashboardService(projects ProjectStore, applications ApplicationStore, cache DashboardCache) *DashboardService {
	return &DashboardService{
		projects:     projects,
		applications: applications,
		cache:        cache,
	}
}

// Dashboard returns owned projects (detail view), member projects and the
// user's applications in one response. Served from cache when fresh.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	if s.cache != nil {
		if d, ok := s.cache.Get(ctx, userID); ok {
			return d, nil
		}
	}

	d, err := s.assemble(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, d, dashboardTTL)
	}
	return d, nil
}

// OwnerDashboard returns only the projects the user owns.
func (s *DashboardService) OwnerDashboard(ctx context.Context, userID string) (*domain.OwnerDashboard, error) {
	owned, err := s.projects.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.OwnerDashboard{OwnedProjects: owned}, nil
}

// MemberDashboard returns the projects the user joined and their applications.
func (s *DashboardService) MemberDashboard(ctx context.Context, userID string) (*domain.MemberDashboard, error) {
	member, err := s.projects.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.MemberDashboard{MemberProjects: member, MyApplications: apps}, nil
}

func (s *DashboardService) assemble(ctx context.Context, userID string) (*domain.Dashboard, error) {
	owned, err := s.projects.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	member, err := s.projects.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Dashboard{
		OwnedProjects:  owned,
		MemberProjects: member,
		MyApplications: apps,
	}, nil
}
