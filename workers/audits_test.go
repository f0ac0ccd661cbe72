package workers_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seoscope/db"
	"seoscope/workers"
)

func newTestDB(t *testing.T) (*sql.DB, *db.Queries) {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.EnsureSchema(context.Background(), conn))
	return conn, db.New(conn)
}

func TestAuditWorker_FlushOnStop(t *testing.T) {
	conn, q := newTestDB(t)

	w := workers.NewAuditWorker(conn, q, zap.NewNop(), 100, time.Hour, 64)
	w.Start()

	for i := 0; i < 5; i++ {
		ok := w.Enqueue(workers.AuditEvent{
			ReportID: "rep_test",
			Tool:     "analyze_meta",
			Domain:   "example.com",
			CacheHit: i%2 == 0,
			Duration: 12 * time.Millisecond,
			Time:     time.Now(),
		})
		require.True(t, ok)
	}
	w.Stop()

	var audits int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM audits").Scan(&audits))
	assert.Equal(t, 5, audits)

	var calls int64
	require.NoError(t, conn.QueryRow("SELECT calls FROM tool_usage WHERE tool = 'analyze_meta'").Scan(&calls))
	assert.Equal(t, int64(5), calls)
}

func TestAuditWorker_FlushOnBatchSize(t *testing.T) {
	conn, q := newTestDB(t)

	w := workers.NewAuditWorker(conn, q, zap.NewNop(), 2, time.Hour, 64)
	w.Start()
	defer w.Stop()

	w.Enqueue(workers.AuditEvent{ReportID: "rep_a", Tool: "scan_report", Domain: "example.com"})
	w.Enqueue(workers.AuditEvent{ReportID: "rep_b", Tool: "scan_report", Domain: "example.com"})

	require.Eventually(t, func() bool {
		var n int
		if err := conn.QueryRow("SELECT COUNT(*) FROM audits").Scan(&n); err != nil {
			return false
		}
		return n == 2
	}, 2*time.Second, 20*time.Millisecond)
}

func TestAuditWorker_EnqueueFullBuffer(t *testing.T) {
	conn, q := newTestDB(t)

	// not started: nothing drains the buffer
	w := workers.NewAuditWorker(conn, q, zap.NewNop(), 100, time.Hour, 1)

	assert.True(t, w.Enqueue(workers.AuditEvent{ReportID: "rep_1", Tool: "x", Domain: "d"}))
	assert.False(t, w.Enqueue(workers.AuditEvent{ReportID: "rep_2", Tool: "x", Domain: "d"}))
}
