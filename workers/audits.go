package workers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/zap"

	"seoscope/db"
)

// AuditEvent records one tool invocation.
type AuditEvent struct {
	ReportID string
	Tool     string
	Domain   string
	CacheHit bool
	Duration time.Duration
	Time     time.Time
}

// AuditWorker batches audit events and writes them to the DB: one row per
// event in audits, plus coalesced per-tool daily counters in tool_usage.
type AuditWorker struct {
	db            *sql.DB     // raw handle for multi-row statements
	q             *db.Queries // per-row fallback path
	log           *zap.Logger
	in            chan AuditEvent
	batchSize     int
	flushInterval time.Duration
	closed        chan struct{}
}

func NewAuditWorker(sqlDB *sql.DB, q *db.Queries, log *zap.Logger, batchSize int, flushInterval time.Duration, buffer int) *AuditWorker {
	return &AuditWorker{
		db:            sqlDB,
		q:             q,
		log:           log,
		in:            make(chan AuditEvent, buffer),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		closed:        make(chan struct{}),
	}
}

func (w *AuditWorker) Start() { go w.loop() }

func (w *AuditWorker) Stop() {
	close(w.in)
	<-w.closed
}

// Enqueue hands an event to the worker; returns false when the buffer is
// full so the caller can fall back to a direct write.
func (w *AuditWorker) Enqueue(ev AuditEvent) bool {
	select {
	case w.in <- ev:
		return true
	default:
		return false
	}
}

// buildInsertAudits builds a multi-row insert for the audits table.
func buildInsertAudits(events []AuditEvent) (string, []any) {
	v := make([]string, 0, len(events))
	args := make([]any, 0, len(events)*5)
	for _, ev := range events {
		v = append(v, "(?, ?, ?, ?, ?)")
		args = append(args, ev.ReportID, ev.Tool, ev.Domain, ev.CacheHit, ev.Duration.Milliseconds())
	}
	q := fmt.Sprintf(
		"INSERT INTO audits (report_id, tool, domain, cache_hit, duration_ms) VALUES %s;",
		strings.Join(v, ","),
	)
	return q, args
}

// buildUpsertUsage builds a multi-row upsert for per-tool daily counters.
func buildUpsertUsage(counts map[string]int64) (string, []any) {
	v := make([]string, 0, len(counts))
	args := make([]any, 0, len(counts)*2)
	for tool, n := range counts {
		v = append(v, "(?, date('now'), ?)")
		args = append(args, tool, n)
	}
	q := fmt.Sprintf(
		"INSERT INTO tool_usage (tool, day, calls) VALUES %s ON CONFLICT(tool, day) DO UPDATE SET calls = calls + excluded.calls;",
		strings.Join(v, ","),
	)
	return q, args
}

func (w *AuditWorker) loop() {
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()
	defer close(w.closed)

	batch := make([]AuditEvent, 0, w.batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		toFlush := batch
		batch = make([]AuditEvent, 0, w.batchSize)

		counts := make(map[string]int64)
		for _, ev := range toFlush {
			counts[ev.Tool]++
		}

		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()

		auditsQ, auditsArgs := buildInsertAudits(toFlush)
		usageQ, usageArgs := buildUpsertUsage(counts)

		err := retry.Do(
			func() error {
				tx, err := w.db.BeginTx(ctx, nil)
				if err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx, auditsQ, auditsArgs...); err != nil {
					_ = tx.Rollback()
					return err
				}
				if _, err := tx.ExecContext(ctx, usageQ, usageArgs...); err != nil {
					_ = tx.Rollback()
					return err
				}
				if err := tx.Commit(); err != nil {
					_ = tx.Rollback()
					return err
				}
				return nil
			},
			retry.Attempts(3),
			retry.Delay(125*time.Millisecond),
			retry.DelayType(retry.BackOffDelay),
			retry.OnRetry(func(n uint, err error) {
				w.log.Warn("retrying audit batch", zap.Uint("attempt", n+1), zap.Error(err))
			}),
		)

		if err != nil {
			w.log.Error("audit batch failed; attempting per-event fallback", zap.Int("events", len(toFlush)), zap.Error(err))
			w.perEventFallback(ctx, toFlush)
			return
		}
		w.log.Debug("audit batch flushed", zap.Int("events", len(toFlush)), zap.Int("tools", len(counts)))
	}

	for {
		select {
		case ev, ok := <-w.in:
			if !ok {
				flush()
				return
			}
			batch = append(batch, ev)
			if len(batch) >= w.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// perEventFallback writes each event individually if the batch failed.
func (w *AuditWorker) perEventFallback(ctx context.Context, events []AuditEvent) {
	for _, ev := range events {
		if err := w.q.AddAudit(ctx, db.AddAuditParams{
			ReportID:   ev.ReportID,
			Tool:       ev.Tool,
			Domain:     ev.Domain,
			CacheHit:   ev.CacheHit,
			DurationMs: ev.Duration.Milliseconds(),
		}); err != nil {
			w.log.Error("fallback AddAudit failed", zap.String("tool", ev.Tool), zap.Error(err))
		}
		if err := w.q.SaveToolUsage(ctx, db.SaveToolUsageParams{
			Tool:  ev.Tool,
			Calls: 1,
		}); err != nil {
			w.log.Error("fallback SaveToolUsage failed", zap.String("tool", ev.Tool), zap.Error(err))
		}
	}
}
