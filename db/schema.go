package db

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS audits (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id   TEXT NOT NULL,
	tool        TEXT NOT NULL,
	domain      TEXT NOT NULL,
	cache_hit   INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tool_usage (
	tool  TEXT NOT NULL,
	day   DATE NOT NULL,
	calls INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (tool, day)
);
`

// EnsureSchema creates the audit tables if they do not exist yet.
func EnsureSchema(ctx context.Context, dbConn *sql.DB) error {
	_, err := dbConn.ExecContext(ctx, schema)
	return err
}
