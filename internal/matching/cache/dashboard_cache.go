package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

const dashboardKeyPrefix = "match:dash:" // match:dash:{user_id}

// DashboardCache is a best-effort Redis cache for dashboard responses.
// Failures are logged and treated as misses; Redis being down never breaks
// a read.
type DashboardCache struct {
	client *redis.Client
}

func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

func (c *DashboardCache) key(userID string) string {
	return dashboardKeyPrefix + userID
}

func (c *DashboardCache) Get(ctx context.Context, userID string) (*domain.Dashboard, bool) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] get dashboard user=%s: %v", userID, err)
		return nil, false
	}

	var d domain.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		log.Printf("[cache] unmarshal dashboard user=%s: %v", userID, err)
		return nil, false
	}
	return &d, true
}

func (c *DashboardCache) Set(ctx context.Context, userID string, d *domain.Dashboard, ttl time.Duration) {
	data, err := json.Marshal(d)
	if err != nil {
		log.Printf("[cache] marshal dashboard user=%s: %v", userID, err)
		return
	}
	if err := c.client.Set(ctx, c.key(userID), data, ttl).Err(); err != nil {
		log.Printf("[cache] set dashboard user=%s: %v", userID, err)
	}
}

func (c *DashboardCache) Invalidate(ctx context.Context, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = c.key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[cache] invalidate dashboards: %v", err)
	}
}
