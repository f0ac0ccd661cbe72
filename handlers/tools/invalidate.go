package tools

import (
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"seoscope/helpers"
)

// invalidateDomain drops every cached entry keyed under the domain. Keys are
// "<tool>:<domain>[:<rest>]", so the domain is matched as a bounded segment.
func (t *Tools) invalidateDomain(c echo.Context) error {
	var req struct {
		Domain string `json:"domain" validate:"required,hostname"`
	}
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}

	started := time.Now()
	ctx := c.Request().Context()

	pattern := "^[a-z_]+:" + regexp.QuoteMeta(req.Domain) + "(:|$)"
	removed, err := t.Cache.DeletePattern(pattern)
	if err != nil {
		t.Log.Error("cache invalidation failed", zap.String("domain", req.Domain), zap.Error(err))
		return helpers.JSONError(c, http.StatusInternalServerError, "invalidation failed")
	}

	t.recordAudit(ctx, "invalidate_domain", req.Domain, false, started)

	return helpers.JSONSuccess(c, http.StatusOK, map[string]any{
		"removed": removed,
	}, "")
}
