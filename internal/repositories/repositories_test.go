package repositories

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		raw.Close()
	})
	return sqlx.NewDb(raw, "postgres"), mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

var postColumns = []string{"id", "user_id", "user_handle", "group_id", "content", "date"}

func postRows(groupID int64, ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows(postColumns)
	for _, id := range ids {
		rows.AddRow(id, int64(3), "carol", groupID, "post", time.Unix(1700000000+id, 0))
	}
	return rows
}
