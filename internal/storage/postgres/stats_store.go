package postgres

import (
	"context"
	"database/sql"
)

// Stats is a point-in-time snapshot of recruiting activity, logged by the
// worker after each sweep.
type Stats struct {
	Projects            int
	OpenProjects        int
	Members             int
	PendingApplications int
}

// StatsStore runs aggregate queries over the same database through the
// database/sql driver, keeping the worker independent of the API's pgx pool.
type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) Snapshot(ctx context.Context) (*Stats, error) {
	const q = `
select
  (select count(*) from projects),
  (select count(*) from projects where is_open),
  (select count(*) from project_members),
  (select count(*) from applications where status = 'PENDING');
`
	var st Stats
	err := s.db.QueryRowContext(ctx, q).Scan(
		&st.Projects, &st.OpenProjects, &st.Members, &st.PendingApplications,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
