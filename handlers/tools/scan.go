package tools

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"seoscope/helpers"
	"seoscope/routes"
	"seoscope/seo"
)

// ScanReport rolls route resolution, URL reconciliation and metadata
// analysis for one changed file into a single report.
type ScanReport struct {
	ReportID   string                `json:"report_id"`
	FilePath   string                `json:"file_path"`
	Route      *routes.ResolvedRoute `json:"route,omitempty"`
	MatchedURL string                `json:"matched_url,omitempty"`
	Meta       *seo.MetaReport       `json:"meta,omitempty"`
	Notes      []string              `json:"notes,omitempty"`
}

func (t *Tools) scanReport(c echo.Context) error {
	var req struct {
		Domain    string `json:"domain" validate:"required,hostname"`
		FilePath  string `json:"file_path" validate:"required"`
		Framework string `json:"framework" validate:"omitempty,oneof=nextjs astro remix generic"`
	}
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}

	started := time.Now()
	ctx := c.Request().Context()

	reportID, err := helpers.NewReportID()
	if err != nil {
		t.Log.Error("report id generation failed", zap.Error(err))
		return helpers.JSONError(c, http.StatusInternalServerError, "couldn't create report")
	}

	report := &ScanReport{ReportID: reportID, FilePath: req.FilePath}
	cacheHit := false

	route, ok := routes.Resolve(req.FilePath, req.Framework)
	if !ok {
		report.Notes = append(report.Notes, "no route could be inferred from the file path")
		t.recordAudit(ctx, "scan_report", req.Domain, false, started)
		return helpers.JSONSuccess(c, http.StatusOK, report, "")
	}
	report.Route = &route

	urls, urlsHit, err := t.cachedSiteURLs(ctx, req.Domain)
	if err != nil {
		t.Log.Error("site urls lookup failed", zap.String("domain", req.Domain), zap.Error(err))
		return helpers.JSONError(c, http.StatusBadGateway, "backend unavailable")
	}
	cacheHit = urlsHit

	target := route.URLPath
	if matched, ok := routes.FindMatch(route.URLPath, urls); ok {
		report.MatchedURL = matched
		target = matched
	} else {
		report.Notes = append(report.Notes, "resolved route is not among the domain's known URLs")
	}

	meta, metaHit, err := t.cachedAnalysis(ctx, req.Domain, target)
	if err != nil {
		// partial report is still useful: the route resolved even if the
		// page fetch failed
		report.Notes = append(report.Notes, "page analysis unavailable: "+err.Error())
	} else {
		report.Meta = meta
		cacheHit = cacheHit && metaHit
	}

	t.recordAudit(ctx, "scan_report", req.Domain, cacheHit, started)
	return helpers.JSONSuccess(c, http.StatusOK, report, "")
}
