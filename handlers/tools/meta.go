package tools

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"seoscope/helpers"
)

// analyzeMeta fetches a page and scores its metadata. The expensive fetch
// and parse are memoized per (domain, path).
func (t *Tools) analyzeMeta(c echo.Context) error {
	var req struct {
		Domain string `json:"domain" validate:"required,hostname"`
		Path   string `json:"path" validate:"required,startswith=/"`
	}
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}

	started := time.Now()
	ctx := c.Request().Context()

	report, hit, err := t.cachedAnalysis(ctx, req.Domain, req.Path)
	if err != nil {
		t.Log.Error("meta analysis failed", zap.String("domain", req.Domain), zap.String("path", req.Path), zap.Error(err))
		return helpers.JSONError(c, http.StatusBadGateway, "couldn't fetch page")
	}

	t.recordAudit(ctx, "analyze_meta", req.Domain, hit, started)

	return helpers.JSONSuccess(c, http.StatusOK, map[string]any{
		"report":    report,
		"cache_hit": hit,
	}, "")
}
