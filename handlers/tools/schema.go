package tools

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"seoscope/cache"
	"seoscope/helpers"
	"seoscope/seo"
)

// generateSchema builds a JSON-LD template from a page's extracted facts.
// Memoized per (domain, path, type); the page fetch itself is shared with
// analyze_meta through the fetcher's document cache.
func (t *Tools) generateSchema(c echo.Context) error {
	var req struct {
		Domain string `json:"domain" validate:"required,hostname"`
		Path   string `json:"path" validate:"required,startswith=/"`
		Type   string `json:"type" validate:"omitempty,oneof=WebPage Article FAQPage"`
	}
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}

	started := time.Now()
	ctx := c.Request().Context()
	key := cache.Key("schema", req.Domain, req.Path, req.Type)
	hit := t.Cache.Has(key)

	v, err := t.Cache.GetOrSet(ctx, key, 0, func(ctx context.Context) (any, error) {
		page, _, err := t.Fetcher.Fetch(ctx, pageURL(req.Domain, req.Path))
		if err != nil {
			return nil, err
		}
		return seo.GenerateSchema(page, req.Type)
	})
	if err != nil {
		t.Log.Error("schema generation failed", zap.String("domain", req.Domain), zap.String("path", req.Path), zap.Error(err))
		return helpers.JSONError(c, http.StatusBadGateway, "couldn't fetch page")
	}

	t.recordAudit(ctx, "generate_schema", req.Domain, hit, started)

	return helpers.JSONSuccess(c, http.StatusOK, map[string]any{
		"schema":    v,
		"cache_hit": hit,
	}, "")
}
