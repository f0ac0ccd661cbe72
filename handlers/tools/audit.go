package tools

import (
	"context"
	"time"

	"go.uber.org/zap"

	"seoscope/db"
	"seoscope/helpers"
	"seoscope/workers"
)

// recordAudit hands one tool invocation to the audit worker. If the worker
// buffer is full or no worker is configured, it falls back to direct writes.
func (t *Tools) recordAudit(ctx context.Context, tool, domain string, cacheHit bool, started time.Time) {
	reportID, err := helpers.NewReportID()
	if err != nil {
		t.Log.Warn("report id generation failed", zap.Error(err))
		return
	}

	ev := workers.AuditEvent{
		ReportID: reportID,
		Tool:     tool,
		Domain:   domain,
		CacheHit: cacheHit,
		Duration: time.Since(started),
		Time:     time.Now(),
	}

	if t.Worker != nil {
		if t.Worker.Enqueue(ev) {
			return
		}
		t.writeAuditFallback(ctx, ev, "worker full")
		return
	}

	t.writeAuditFallback(ctx, ev, "no worker configured")
}

func (t *Tools) writeAuditFallback(ctx context.Context, ev workers.AuditEvent, reason string) {
	if t.Q == nil {
		return
	}
	if err := t.Q.AddAudit(ctx, db.AddAuditParams{
		ReportID:   ev.ReportID,
		Tool:       ev.Tool,
		Domain:     ev.Domain,
		CacheHit:   ev.CacheHit,
		DurationMs: ev.Duration.Milliseconds(),
	}); err != nil {
		t.Log.Debug("fallback AddAudit failed", zap.String("tool", ev.Tool), zap.Error(err))
	}
	if err := t.Q.SaveToolUsage(ctx, db.SaveToolUsageParams{Tool: ev.Tool, Calls: 1}); err != nil {
		t.Log.Debug("fallback SaveToolUsage failed", zap.String("tool", ev.Tool), zap.Error(err))
	}
	t.Log.Debug("audit worker fallback sync write", zap.String("tool", ev.Tool), zap.String("reason", reason))
}
