package tools

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"seoscope/backend"
	"seoscope/cache"
	"seoscope/helpers"
)

// siteContext returns the domain's analytics rollup from the backend,
// memoized so repeated assistant questions don't hammer the service.
func (t *Tools) siteContext(c echo.Context) error {
	var req struct {
		Domain string `json:"domain" validate:"required,hostname"`
	}
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}

	started := time.Now()
	ctx := c.Request().Context()
	key := cache.Key("context", req.Domain)
	hit := t.Cache.Has(key)

	v, err := t.Cache.GetOrSet(ctx, key, 0, func(ctx context.Context) (any, error) {
		return t.Backend.DomainSummary(ctx, req.Domain)
	})
	if err != nil {
		t.Log.Error("domain summary failed", zap.String("domain", req.Domain), zap.Error(err))
		return helpers.JSONError(c, http.StatusBadGateway, "backend unavailable")
	}

	summary, ok := v.(*backend.Summary)
	if !ok {
		return helpers.JSONError(c, http.StatusInternalServerError, fmt.Sprintf("unexpected cache payload for %s", key))
	}

	t.recordAudit(ctx, "site_context", req.Domain, hit, started)

	return helpers.JSONSuccess(c, http.StatusOK, map[string]any{
		"summary":   summary,
		"cache_hit": hit,
	}, "")
}
