package db_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoscope/db"
)

func newTestQueries(t *testing.T) *db.Queries {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.EnsureSchema(context.Background(), conn))
	return db.New(conn)
}

func TestAddAudit(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	err := q.AddAudit(ctx, db.AddAuditParams{
		ReportID:   "rep_abc",
		Tool:       "analyze_meta",
		Domain:     "example.com",
		CacheHit:   true,
		DurationMs: 42,
	})
	require.NoError(t, err)
}

func TestSaveToolUsage_Accumulates(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	require.NoError(t, q.SaveToolUsage(ctx, db.SaveToolUsageParams{Tool: "scan_report", Calls: 2}))
	require.NoError(t, q.SaveToolUsage(ctx, db.SaveToolUsageParams{Tool: "scan_report", Calls: 3}))

	rows, err := q.GetToolUsage(ctx, "scan_report")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(5), rows[0].Calls)
}
