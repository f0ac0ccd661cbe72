package db

import (
	"context"
	"time"
)

const addAudit = `
INSERT INTO audits (report_id, tool, domain, cache_hit, duration_ms)
VALUES (?, ?, ?, ?, ?)
`

type AddAuditParams struct {
	ReportID   string
	Tool       string
	Domain     string
	CacheHit   bool
	DurationMs int64
}

func (q *Queries) AddAudit(ctx context.Context, arg AddAuditParams) error {
	_, err := q.db.ExecContext(ctx, addAudit,
		arg.ReportID, arg.Tool, arg.Domain, arg.CacheHit, arg.DurationMs)
	return err
}

const saveToolUsage = `
INSERT INTO tool_usage (tool, day, calls) VALUES (?, date('now'), ?)
ON CONFLICT(tool, day) DO UPDATE SET calls = calls + excluded.calls
`

type SaveToolUsageParams struct {
	Tool  string
	Calls int64
}

func (q *Queries) SaveToolUsage(ctx context.Context, arg SaveToolUsageParams) error {
	_, err := q.db.ExecContext(ctx, saveToolUsage, arg.Tool, arg.Calls)
	return err
}

const getToolUsage = `
SELECT tool, day, calls FROM tool_usage WHERE tool = ? ORDER BY day DESC LIMIT 30
`

type ToolUsageRow struct {
	Tool  string
	Day   time.Time
	Calls int64
}

func (q *Queries) GetToolUsage(ctx context.Context, tool string) ([]ToolUsageRow, error) {
	rows, err := q.db.QueryContext(ctx, getToolUsage, tool)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ToolUsageRow
	for rows.Next() {
		var r ToolUsageRow
		if err := rows.Scan(&r.Tool, &r.Day, &r.Calls); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
