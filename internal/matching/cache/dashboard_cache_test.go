package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

func setupCache(t *testing.T) (*DashboardCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewDashboardCache(client), mr
}

func sampleDashboard() *domain.Dashboard {
	return &domain.Dashboard{
		OwnedProjects: []domain.ProjectDetail{{
			Project: domain.Project{ID: "p1", Name: "demo", OwnerID: "u1"},
		}},
		MemberProjects: []domain.Project{},
		MyApplications: []domain.Application{{
			UserID:          "u1",
			ProjectID:       "p2",
			AppliedPosition: []domain.Position{domain.PositionBackend},
			Status:          domain.StatusPending,
		}},
	}
}

func TestDashboardCache_SetGet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "u1")
	assert.False(t, ok)

	c.Set(ctx, "u1", sampleDashboard(), time.Minute)

	got, ok := c.Get(ctx, "u1")
	require.True(t, ok)
	require.Len(t, got.OwnedProjects, 1)
	assert.Equal(t, "p1", got.OwnedProjects[0].ID)
	require.Len(t, got.MyApplications, 1)
	assert.Equal(t, domain.StatusPending, got.MyApplications[0].Status)
}

func TestDashboardCache_TTLExpiry(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, "u1", sampleDashboard(), 30*time.Second)
	mr.FastForward(31 * time.Second)

	_, ok := c.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestDashboardCache_Invalidate(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, "u1", sampleDashboard(), time.Minute)
	c.Set(ctx, "u2", sampleDashboard(), time.Minute)

	c.Invalidate(ctx, "u1", "u2")

	_, ok := c.Get(ctx, "u1")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "u2")
	assert.False(t, ok)
}

func TestDashboardCache_KeysAreScopedPerUser(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, "u1", sampleDashboard(), time.Minute)
	c.Invalidate(ctx, "u2")

	_, ok := c.Get(ctx, "u1")
	assert.True(t, ok)
}
