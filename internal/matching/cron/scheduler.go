package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/teamup-dev/teamup-backend/internal/matching/service"
	"github.com/teamup-dev/teamup-backend/internal/storage/postgres"
)

// Scheduler keeps the advisory is_open flags in sync and logs periodic
// activity snapshots. Eligibility never depends on these sweeps; they only
// serve listings and dashboards.
type Scheduler struct {
	projects *service.ProjectService
	stats    *postgres.StatsStore
}

func NewScheduler(projects *service.ProjectService, stats *postgres.StatsStore) *Scheduler {
	return &Scheduler{projects: projects, stats: stats}
}

// Start initializes cron tasks
func (s *Scheduler) Start() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Every minute: recompute is_open for projects whose window drifted.
	_, err := c.AddFunc("0 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		changed, err := s.projects.RefreshOpenFlags(ctx)
		if err != nil {
			log.Printf("[worker] refresh open flags: %v", err)
			return
		}
		if changed > 0 {
			log.Printf("[worker] refreshed is_open for %d projects", changed)
		}
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return c
	}

	if s.stats != nil {
		// Every ten minutes: log an activity snapshot.
		_, err = c.AddFunc("0 */10 * * * *", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			st, err := s.stats.Snapshot(ctx)
			if err != nil {
				log.Printf("[worker] stats snapshot: %v", err)
				return
			}
			log.Printf("[worker] projects=%d open=%d members=%d pending_applications=%d",
				st.Projects, st.OpenProjects, st.Members, st.PendingApplications)
		})
		if err != nil {
			log.Printf("Failed to create cron job: %v", err)
		}
	}

	log.Println("Cron scheduler started (is_open sweep every minute)")
	c.Start()
	return c
}
