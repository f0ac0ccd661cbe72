package tools

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"seoscope/helpers"
	"seoscope/routes"
)

// resolveRoute maps a source file path to its logical URL. An unresolved
// path is a normal outcome, reported with resolved=false, never an error.
func (t *Tools) resolveRoute(c echo.Context) error {
	var req struct {
		FilePath  string `json:"file_path" validate:"required"`
		Framework string `json:"framework" validate:"omitempty,oneof=nextjs astro remix generic"`
		Domain    string `json:"domain"`
	}
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}

	started := time.Now()
	ctx := c.Request().Context()

	route, ok := routes.Resolve(req.FilePath, req.Framework)
	if !ok {
		t.Log.Debug("no route inferred", zap.String("file_path", req.FilePath))
		return helpers.JSONSuccess(c, http.StatusOK, map[string]any{
			"resolved": false,
			"detected": routes.DetectFramework(req.FilePath),
		}, "")
	}

	result := map[string]any{
		"resolved": true,
		"route":    route,
	}

	if req.Domain != "" {
		urls, hit, err := t.cachedSiteURLs(ctx, req.Domain)
		if err != nil {
			t.Log.Error("site urls lookup failed", zap.String("domain", req.Domain), zap.Error(err))
			return helpers.JSONError(c, http.StatusBadGateway, "backend unavailable")
		}
		if matched, ok := routes.FindMatch(route.URLPath, urls); ok {
			result["matched_url"] = matched
		}
		t.recordAudit(ctx, "resolve_route", req.Domain, hit, started)
	}

	return helpers.JSONSuccess(c, http.StatusOK, result, "")
}
