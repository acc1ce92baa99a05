package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/matching/engine"
)

// In-memory fakes for the storage interfaces. They mirror the behavior of
// the pgx repositories closely enough for lifecycle tests, including the
// unique-pair guard and the transactional capacity re-check.

func pairKey(userID, projectID string) string {
	return userID + "/" + projectID
}

type fakeProjectStore struct {
	projects map[string]*domain.Project
	members  *fakeMemberStore
	seq      int
}

func newFakeProjectStore(members *fakeMemberStore) *fakeProjectStore {
	return &fakeProjectStore{projects: map[string]*domain.Project{}, members: members}
}

func (f *fakeProjectStore) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if p.ID == "" {
		f.seq++
		p.ID = fmt.Sprintf("project-%d", f.seq)
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.projects[p.ID] = &cp
	return p, nil
}

func (f *fakeProjectStore) Get(_ context.Context, id string) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectStore) GetDetail(ctx context.Context, id string) (*domain.ProjectDetail, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	members, _ := f.members.ListByProject(ctx, id)
	d := &domain.ProjectDetail{Project: *p, Members: members}
	d.MemberCount = len(members)
	return d, nil
}

func (f *fakeProjectStore) List(_ context.Context, _, _ int) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjectStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.ProjectDetail, error) {
	out := make([]domain.ProjectDetail, 0, 4)
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			d, _ := f.GetDetail(ctx, p.ID)
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjectStore) ListByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	out := make([]domain.Project, 0, 4)
	for _, p := range f.projects {
		if m, _ := f.members.Find(ctx, userID, p.ID); m != nil {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjectStore) Update(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if _, ok := f.projects[p.ID]; !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	f.projects[p.ID] = &cp
	return p, nil
}

func (f *fakeProjectStore) SetOpen(_ context.Context, id string, open bool) error {
	p, ok := f.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.IsOpen = open
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.projects[id]; !ok {
		return false, nil
	}
	delete(f.projects, id)
	return true, nil
}

func (f *fakeProjectStore) ListForOpenRefresh(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

type fakeMemberStore struct {
	members map[string]*domain.ProjectMember
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{members: map[string]*domain.ProjectMember{}}
}

func (f *fakeMemberStore) Find(_ context.Context, userID, projectID string) (*domain.ProjectMember, error) {
	m, ok := f.members[pairKey(userID, projectID)]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberStore) ListByProject(_ context.Context, projectID string) ([]domain.ProjectMember, error) {
	out := make([]domain.ProjectMember, 0, 4)
	for _, m := range f.members {
		if m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeMemberStore) put(userID, projectID string, roles []domain.Position) bool {
	key := pairKey(userID, projectID)
	if _, ok := f.members[key]; ok {
		return false
	}
	f.members[key] = &domain.ProjectMember{
		UserID:    userID,
		ProjectID: projectID,
		Role:      roles,
		JoinedAt:  time.Now().UTC(),
	}
	return true
}

type fakeApplicationStore struct {
	apps    map[string]*domain.Application
	members *fakeMemberStore
}

func newFakeApplicationStore(members *fakeMemberStore) *fakeApplicationStore {
	return &fakeApplicationStore{apps: map[string]*domain.Application{}, members: members}
}

func (f *fakeApplicationStore) Create(_ context.Context, a *domain.Application) (*domain.Application, error) {
	key := pairKey(a.UserID, a.ProjectID)
	if _, ok := f.apps[key]; ok {
		return nil, domain.ErrAlreadyApplied
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.apps[key] = &cp
	return a, nil
}

func (f *fakeApplicationStore) Find(_ context.Context, userID, projectID string) (*domain.Application, error) {
	a, ok := f.apps[pairKey(userID, projectID)]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApplicationStore) ListByUser(_ context.Context, userID string) ([]domain.Application, error) {
	out := make([]domain.Application, 0, 4)
	for _, a := range f.apps {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out, nil
}

func (f *fakeApplicationStore) ListByProject(_ context.Context, projectID string) ([]domain.Application, error) {
	out := make([]domain.Application, 0, 4)
	for _, a := range f.apps {
		if a.ProjectID == projectID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, userID, projectID string, status domain.ApplicationStatus) (*domain.Application, error) {
	a, ok := f.apps[pairKey(userID, projectID)]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

func (f *fakeApplicationStore) Delete(_ context.Context, userID, projectID string) (bool, error) {
	key := pairKey(userID, projectID)
	if _, ok := f.apps[key]; !ok {
		return false, nil
	}
	delete(f.apps, key)
	return true, nil
}

func (f *fakeApplicationStore) AcceptPending(ctx context.Context, project *domain.Project, app *domain.Application) (*domain.Application, error) {
	members, _ := f.members.ListByProject(ctx, project.ID)
	for _, pos := range app.AppliedPosition {
		if !engine.HasRoom(project, members, pos) {
			return nil, fmt.Errorf("%s is full: %w", pos, domain.ErrPositionFull)
		}
	}

	stored, ok := f.apps[pairKey(app.UserID, app.ProjectID)]
	if !ok || stored.Status != domain.StatusPending {
		return nil, domain.ErrInvalidState
	}
	stored.Status = domain.StatusAccepted
	stored.UpdatedAt = time.Now().UTC()

	f.members.put(app.UserID, app.ProjectID, app.AppliedPosition)

	cp := *stored
	return &cp, nil
}

func (f *fakeApplicationStore) EnsureMember(_ context.Context, userID, projectID string, roles []domain.Position) error {
	f.members.put(userID, projectID, roles)
	return nil
}

type fakeUserReader struct {
	users map[string]engine.Applicant
}

func newFakeUserReader() *fakeUserReader {
	return &fakeUserReader{users: map[string]engine.Applicant{}}
}

func (f *fakeUserReader) GetApplicant(_ context.Context, userID string) (engine.Applicant, error) {
	a, ok := f.users[userID]
	if !ok {
		return engine.Applicant{}, domain.ErrUserNotFound
	}
	return a, nil
}

type fakeCache struct {
	store       map[string]*domain.Dashboard
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]*domain.Dashboard{}}
}

func (f *fakeCache) Get(_ context.Context, userID string) (*domain.Dashboard, bool) {
	d, ok := f.store[userID]
	return d, ok
}

func (f *fakeCache) Set(_ context.Context, userID string, d *domain.Dashboard, _ time.Duration) {
	f.store[userID] = d
}

func (f *fakeCache) Invalidate(_ context.Context, userIDs ...string) {
	for _, id := range userIDs {
		delete(f.store, id)
		f.invalidated = append(f.invalidated, id)
	}
}
