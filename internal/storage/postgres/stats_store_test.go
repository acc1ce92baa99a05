package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsStore_Snapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"projects", "open", "members", "pending"}).
		AddRow(12, 7, 30, 4)
	mock.ExpectQuery("select").WillReturnRows(rows)

	st, err := NewStatsStore(db).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, st.Projects)
	assert.Equal(t, 7, st.OpenProjects)
	assert.Equal(t, 30, st.Members)
	assert.Equal(t, 4, st.PendingApplications)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsStore_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("select").WillReturnError(context.DeadlineExceeded)

	_, err = NewStatsStore(db).Snapshot(context.Background())
	assert.Error(t, err)
}
