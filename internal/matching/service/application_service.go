package service

import (
	"context"
	"fmt"
	"time"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/matching/engine"
)

// ApplicationService drives the application lifecycle: eligibility-guarded
// creation, owner-driven accept/reject and applicant-driven withdrawal.
// It fetches state immediately before each decision and hands plain data to
// the engine; the decision itself never touches storage.
type ApplicationService struct {
	projects     ProjectStore
	applications ApplicationStore
	members      MemberStore
	users        UserReader
	cache        DashboardCache
	now          func() time.Time
}

func NewApplicationService(projects ProjectStore, applications ApplicationStore, members MemberStore, users UserReader, cache DashboardCache) *ApplicationService {
	return &ApplicationService{
		projects:     projects,
		applications: applications,
		members:      members,
		users:        users,
		cache:        cache,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CheckEligibility assembles current state and runs the evaluator. The
// verdict accumulates every blocking reason; it never short-circuits.
func (s *ApplicationService) CheckEligibility(ctx context.Context, userID, projectID string, positions []domain.Position) (engine.EvalResult, error) {
	if err := validatePositions(positions); err != nil {
		return engine.EvalResult{}, err
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return engine.EvalResult{}, err
	}

	applicant, err := s.users.GetApplicant(ctx, userID)
	if err != nil {
		return engine.EvalResult{}, err
	}

	members, err := s.members.ListByProject(ctx, projectID)
	if err != nil {
		return engine.EvalResult{}, err
	}

	existingApp, err := s.applications.Find(ctx, userID, projectID)
	if err != nil {
		return engine.EvalResult{}, err
	}

	existingMember, err := s.members.Find(ctx, userID, projectID)
	if err != nil {
		return engine.EvalResult{}, err
	}

	return engine.Evaluate(engine.EvalInput{
		Applicant:          applicant,
		Project:            project,
		RequestedPositions: positions,
		Members:            members,
		ExistingApp:        existingApp,
		ExistingMember:     existingMember,
		Now:                s.now(),
	}), nil
}

// Apply creates a PENDING application once the evaluator says yes. A failed
// verdict comes back as *domain.IneligibleError carrying all reasons. The
// unique (user, project) constraint backs this up against concurrent applies.
func (s *ApplicationService) Apply(ctx context.Context, userID, projectID string, positions []domain.Position, coverLetter string) (*domain.Application, error) {
	verdict, err := s.CheckEligibility(ctx, userID, projectID, positions)
	if err != nil {
		return nil, err
	}
	if !verdict.OK {
		return nil, &domain.IneligibleError{Reasons: verdict.Reasons}
	}

	app := &domain.Application{
		UserID:          userID,
		ProjectID:       projectID,
		AppliedPosition: positions,
		Status:          domain.StatusPending,
		CoverLetter:     coverLetter,
	}
	created, err := s.applications.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	s.invalidateFor(ctx, userID, projectID)
	return created, nil
}

// Accept promotes a PENDING application to ACCEPTED and creates the
// membership. Re-accepting an ACCEPTED application only re-ensures the
// membership; it never duplicates it. Owner-only.
func (s *ApplicationService) Accept(ctx context.Context, actorID, applicantID, projectID string) (*domain.Application, error) {
	project, app, err := s.ownerAndApplication(ctx, actorID, applicantID, projectID)
	if err != nil {
		return nil, err
	}

	switch app.Status {
	case domain.StatusAccepted:
		if err := s.applications.EnsureMember(ctx, applicantID, projectID, app.AppliedPosition); err != nil {
			return nil, err
		}
		return app, nil
	case domain.StatusRejected:
		return nil, fmt.Errorf("%w: cannot accept a rejected application", domain.ErrInvalidState)
	}

	accepted, err := s.applications.AcceptPending(ctx, project, app)
	if err != nil {
		return nil, err
	}

	s.invalidateFor(ctx, applicantID, projectID)
	return accepted, nil
}

// Reject moves a PENDING application to REJECTED. No membership side effect.
// Owner-only.
func (s *ApplicationService) Reject(ctx context.Context, actorID, applicantID, projectID string) (*domain.Application, error) {
	_, app, err := s.ownerAndApplication(ctx, actorID, applicantID, projectID)
	if err != nil {
		return nil, err
	}

	if app.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: only pending applications can be rejected", domain.ErrInvalidState)
	}

	rejected, err := s.applications.UpdateStatus(ctx, applicantID, projectID, domain.StatusRejected)
	if err != nil {
		return nil, err
	}

	s.invalidateFor(ctx, applicantID, projectID)
	return rejected, nil
}

// Withdraw deletes the applicant's own PENDING application. Applicant-only;
// withdrawing a decided application is an invalid state, not a deletion.
func (s *ApplicationService) Withdraw(ctx context.Context, actorID, applicantID, projectID string) error {
	if actorID != applicantID {
		return domain.ErrForbidden
	}

	app, err := s.applications.Find(ctx, applicantID, projectID)
	if err != nil {
		return err
	}
	if app == nil {
		return domain.ErrApplicationNotFound
	}
	if app.Status != domain.StatusPending {
		return fmt.Errorf("%w: only pending applications can be withdrawn", domain.ErrInvalidState)
	}

	ok, err := s.applications.Delete(ctx, applicantID, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrApplicationNotFound
	}

	s.invalidateFor(ctx, applicantID, projectID)
	return nil
}

// ListMine returns the caller's applications with project summaries.
func (s *ApplicationService) ListMine(ctx context.Context, userID string) ([]domain.Application, error) {
	return s.applications.ListByUser(ctx, userID)
}

// ListForProject returns a project's applications. Owner-only.
func (s *ApplicationService) ListForProject(ctx context.Context, actorID, projectID string) ([]domain.Application, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}
	return s.applications.ListByProject(ctx, projectID)
}

func (s *ApplicationService) ownerAndApplication(ctx context.Context, actorID, applicantID, projectID string) (*domain.Project, *domain.Application, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if project.OwnerID != actorID {
		return nil, nil, domain.ErrForbidden
	}

	app, err := s.applications.Find(ctx, applicantID, projectID)
	if err != nil {
		return nil, nil, err
	}
	if app == nil {
		return nil, nil, domain.ErrApplicationNotFound
	}
	return project, app, nil
}

func validatePositions(positions []domain.Position) error {
	if len(positions) == 0 {
		return fmt.Errorf("%w: at least one position required", domain.ErrInvalidInput)
	}
	for _, p := range positions {
		if !p.Valid() {
			return fmt.Errorf("%w: unknown position %q", domain.ErrInvalidInput, string(p))
		}
	}
	return nil
}

// invalidateFor drops cached dashboards for both sides of a transition:
// the applicant and the project owner.
func (s *ApplicationService) invalidateFor(ctx context.Context, userID, projectID string) {
	if s.cache == nil {
		return
	}
	ids := []string{userID}
	if p, err := s.projects.Get(ctx, projectID); err == nil {
		ids = append(ids, p.OwnerID)
	}
	s.cache.Invalidate(ctx, ids...)
}
