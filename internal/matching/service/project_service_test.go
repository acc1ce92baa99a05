package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

func newProjectService(t *testing.T) (*ProjectService, *fakeProjectStore, time.Time) {
	t.Helper()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store := newFakeProjectStore(newFakeMemberStore())
	svc := NewProjectService(store, newFakeCache())
	svc.now = func() time.Time { return now }
	return svc, store, now
}

func validCreateInput(now time.Time) CreateProjectInput {
	recruitStart := now.Add(-time.Hour)
	recruitEnd := now.Add(24 * time.Hour)
	return CreateProjectInput{
		Name:             "demo",
		Description:      "a project",
		RecruitmentStart: &recruitStart,
		RecruitmentEnd:   &recruitEnd,
		ProjectStart:     now.Add(48 * time.Hour),
		ProjectEnd:       now.Add(30 * 24 * time.Hour),
		LimitBackend:     2,
	}
}

func TestProjectCreate(t *testing.T) {
	t.Run("seeds is_open from a live window evaluation", func(t *testing.T) {
		svc, _, now := newProjectService(t)

		p, err := svc.Create(context.Background(), "owner", validCreateInput(now))
		require.NoError(t, err)
		assert.True(t, p.IsOpen)
		assert.Equal(t, "owner", p.OwnerID)
	})

	t.Run("closed window yields is_open false", func(t *testing.T) {
		svc, _, now := newProjectService(t)

		in := validCreateInput(now)
		end := now.Add(-time.Minute)
		in.RecruitmentEnd = &end

		p, err := svc.Create(context.Background(), "owner", in)
		require.NoError(t, err)
		assert.False(t, p.IsOpen)
	})

	t.Run("defaults difficulty and proficiency bounds", func(t *testing.T) {
		svc, _, now := newProjectService(t)

		p, err := svc.Create(context.Background(), "owner", validCreateInput(now))
		require.NoError(t, err)
		assert.Equal(t, domain.DifficultyUnknown, p.Difficulty)
		assert.Equal(t, domain.ProficiencyUnknown, p.MinProficiency)
		assert.Equal(t, domain.ProficiencyDiamond, p.MaxProficiency)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		svc, _, now := newProjectService(t)

		in := validCreateInput(now)
		in.ProjectEnd = in.ProjectStart
		_, err := svc.Create(context.Background(), "owner", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects inverted proficiency bounds", func(t *testing.T) {
		svc, _, now := newProjectService(t)

		in := validCreateInput(now)
		in.MinProficiency = domain.ProficiencyGold
		in.MaxProficiency = domain.ProficiencyBronze
		_, err := svc.Create(context.Background(), "owner", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects negative limits", func(t *testing.T) {
		svc, _, now := newProjectService(t)

		in := validCreateInput(now)
		in.LimitAI = -1
		_, err := svc.Create(context.Background(), "owner", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestProjectUpdate(t *testing.T) {
	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, _, now := newProjectService(t)
		p, err := svc.Create(context.Background(), "owner", validCreateInput(now))
		require.NoError(t, err)

		name := "renamed"
		_, err = svc.Update(context.Background(), "intruder", p.ID, UpdateProjectInput{Name: &name})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("moving the window refreshes is_open", func(t *testing.T) {
		svc, store, now := newProjectService(t)
		p, err := svc.Create(context.Background(), "owner", validCreateInput(now))
		require.NoError(t, err)
		require.True(t, p.IsOpen)

		end := now.Add(-time.Minute)
		updated, err := svc.Update(context.Background(), "owner", p.ID, UpdateProjectInput{RecruitmentEnd: &end})
		require.NoError(t, err)
		assert.False(t, updated.IsOpen)

		stored, err := store.Get(context.Background(), p.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsOpen)
	})

	t.Run("patch leaves untouched fields alone", func(t *testing.T) {
		svc, _, now := newProjectService(t)
		p, err := svc.Create(context.Background(), "owner", validCreateInput(now))
		require.NoError(t, err)

		name := "renamed"
		updated, err := svc.Update(context.Background(), "owner", p.ID, UpdateProjectInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)
		assert.Equal(t, p.Description, updated.Description)
		assert.Equal(t, p.LimitBackend, updated.LimitBackend)
	})
}

func TestProjectDelete_OwnerOnly(t *testing.T) {
	svc, _, now := newProjectService(t)
	p, err := svc.Create(context.Background(), "owner", validCreateInput(now))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), "intruder", p.ID), domain.ErrForbidden)
	assert.NoError(t, svc.Delete(context.Background(), "owner", p.ID))

	_, err = svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestRefreshOpenFlags(t *testing.T) {
	svc, store, now := newProjectService(t)
	ctx := context.Background()

	// One project still open, one whose window closed after creation.
	_, err := svc.Create(ctx, "owner", validCreateInput(now))
	require.NoError(t, err)

	stale, err := svc.Create(ctx, "owner", validCreateInput(now))
	require.NoError(t, err)
	end := now.Add(-time.Minute)
	stale.RecruitmentEnd = &end
	stale.IsOpen = true
	_, err = store.Update(ctx, stale)
	require.NoError(t, err)

	changed, err := svc.RefreshOpenFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := store.Get(ctx, stale.ID)
	require.NoError(t, err)
	assert.False(t, got.IsOpen)

	// Second sweep is a no-op.
	changed, err = svc.RefreshOpenFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}
