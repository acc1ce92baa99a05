package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/matching/engine"
)

// ProjectService handles project CRUD and keeps the advisory is_open cache
// in sync with the recruitment window policy.
type ProjectService struct {
	projects ProjectStore
	cache    DashboardCache
	now      func() time.Time
}

func NewProjectService(projects ProjectStore, cache DashboardCache) *ProjectService {
	return &ProjectService{
		projects: projects,
		cache:    cache,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateProjectInput carries the fields a new project is built from.
type CreateProjectInput struct {
	Name             string
	Description      string
	Difficulty       domain.Difficulty
	GithubRepoURL    string
	RecruitmentStart *time.Time
	RecruitmentEnd   *time.Time
	ProjectStart     time.Time
	ProjectEnd       time.Time
	LimitBackend     int
	LimitFrontend    int
	LimitPM          int
	LimitMobile      int
	LimitAI          int
	MinProficiency   domain.Proficiency
	MaxProficiency   domain.Proficiency
}

func (in *CreateProjectInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description required", domain.ErrInvalidInput)
	}
	if !in.ProjectEnd.After(in.ProjectStart) {
		return fmt.Errorf("%w: project end must be after project start", domain.ErrInvalidInput)
	}
	if in.LimitBackend < 0 || in.LimitFrontend < 0 || in.LimitPM < 0 || in.LimitMobile < 0 || in.LimitAI < 0 {
		return fmt.Errorf("%w: position limits must be non-negative", domain.ErrInvalidInput)
	}
	if in.MinProficiency != "" && !in.MinProficiency.Valid() {
		return fmt.Errorf("%w: unknown min proficiency", domain.ErrInvalidInput)
	}
	if in.MaxProficiency != "" && !in.MaxProficiency.Valid() {
		return fmt.Errorf("%w: unknown max proficiency", domain.ErrInvalidInput)
	}
	if !engine.ProficiencyInRange(in.MinProficiency, "", in.MaxProficiency) {
		return fmt.Errorf("%w: min proficiency above max", domain.ErrInvalidInput)
	}
	return nil
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, in CreateProjectInput) (*domain.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &domain.Project{
		Name:             in.Name,
		Description:      in.Description,
		Difficulty:       in.Difficulty,
		GithubRepoURL:    in.GithubRepoURL,
		RecruitmentStart: in.RecruitmentStart,
		RecruitmentEnd:   in.RecruitmentEnd,
		ProjectStart:     in.ProjectStart,
		ProjectEnd:       in.ProjectEnd,
		LimitBackend:     in.LimitBackend,
		LimitFrontend:    in.LimitFrontend,
		LimitPM:          in.LimitPM,
		LimitMobile:      in.LimitMobile,
		LimitAI:          in.LimitAI,
		MinProficiency:   in.MinProficiency,
		MaxProficiency:   in.MaxProficiency,
		OwnerID:          ownerID,
	}
	if p.Difficulty == "" {
		p.Difficulty = domain.DifficultyUnknown
	}
	if p.MinProficiency == "" {
		p.MinProficiency = domain.ProficiencyUnknown
	}
	if p.MaxProficiency == "" {
		p.MaxProficiency = domain.ProficiencyDiamond
	}

	// Seed the advisory is_open cache from a live window evaluation.
	p.IsOpen, _ = engine.IsOpenNow(p, s.now())

	created, err := s.projects.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, projectID string) (*domain.ProjectDetail, error) {
	return s.projects.GetDetail(ctx, projectID)
}

func (s *ProjectService) List(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	return s.projects.List(ctx, limit, offset)
}

// UpdateProjectInput patches a project; nil fields are left untouched.
type UpdateProjectInput struct {
	Name             *string
	Description      *string
	Difficulty       *domain.Difficulty
	GithubRepoURL    *string
	RecruitmentStart *time.Time
	RecruitmentEnd   *time.Time
	ProjectStart     *time.Time
	ProjectEnd       *time.Time
	LimitBackend     *int
	LimitFrontend    *int
	LimitPM          *int
	LimitMobile      *int
	LimitAI          *int
	MinProficiency   *domain.Proficiency
	MaxProficiency   *domain.Proficiency
}

func (s *ProjectService) Update(ctx context.Context, actorID, projectID string, in UpdateProjectInput) (*domain.Project, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}

	applyPatch(p, in)

	if !p.ProjectEnd.After(p.ProjectStart) {
		return nil, fmt.Errorf("%w: project end must be after project start", domain.ErrInvalidInput)
	}

	// Window fields may have moved; refresh the cached flag in the same write.
	p.IsOpen, _ = engine.IsOpenNow(p, s.now())

	updated, err := s.projects.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, actorID)
	return updated, nil
}

func applyPatch(p *domain.Project, in UpdateProjectInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Difficulty != nil {
		p.Difficulty = *in.Difficulty
	}
	if in.GithubRepoURL != nil {
		p.GithubRepoURL = *in.GithubRepoURL
	}
	if in.RecruitmentStart != nil {
		p.RecruitmentStart = in.RecruitmentStart
	}
	if in.RecruitmentEnd != nil {
		p.RecruitmentEnd = in.RecruitmentEnd
	}
	if in.ProjectStart != nil {
		p.ProjectStart = *in.ProjectStart
	}
	if in.ProjectEnd != nil {
		p.ProjectEnd = *in.ProjectEnd
	}
	if in.LimitBackend != nil {
		p.LimitBackend = *in.LimitBackend
	}
	if in.LimitFrontend != nil {
		p.LimitFrontend = *in.LimitFrontend
	}
	if in.LimitPM != nil {
		p.LimitPM = *in.LimitPM
	}
	if in.LimitMobile != nil {
		p.LimitMobile = *in.LimitMobile
	}
	if in.MinProficiency != nil {
		p.MinProficiency = *in.MinProficiency
	}
	if in.MaxProficiency != nil {
		p.MaxProficiency = *in.MaxProficiency
	}
	if in.LimitAI != nil {
		p.LimitAI = *in.LimitAI
	}
}

func (s *ProjectService) Delete(ctx context.Context, actorID, projectID string) error {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if p.OwnerID != actorID {
		return domain.ErrForbidden
	}

	ok, err := s.projects.Delete(ctx, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProjectNotFound
	}
	s.invalidate(ctx, actorID)
	return nil
}

// RefreshOpenFlags recomputes is_open for every project and persists the
// ones that drifted. Returns how many flags changed. Run periodically by the
// worker; the flag is advisory and eligibility always re-evaluates live.
func (s *ProjectService) RefreshOpenFlags(ctx context.Context) (int, error) {
	projects, err := s.projects.ListForOpenRefresh(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	changed := 0
	for i := range projects {
		p := &projects[i]
		open, _ := engine.IsOpenNow(p, now)
		if open == p.IsOpen {
			continue
		}
		if err := s.projects.SetOpen(ctx, p.ID, open); err != nil {
			log.Printf("[matching] refresh is_open project=%s: %v", p.ID, err)
			continue
		}
		changed++
	}
	return changed, nil
}

func (s *ProjectService) invalidate(ctx context.Context, userIDs ...string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userIDs...)
	}
}
