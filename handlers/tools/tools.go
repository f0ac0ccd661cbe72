// Package tools implements the callable SEO operations exposed to the
// AI-assistant host: route resolution, metadata analysis, schema generation,
// site context and scan reports.
package tools

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"seoscope/backend"
	"seoscope/cache"
	"seoscope/db"
	"seoscope/helpers"
	"seoscope/seo"
	"seoscope/workers"
)

// Backend is the slice of the analytics client the tools consume; tests
// substitute a stub.
type Backend interface {
	SiteURLs(ctx context.Context, domain string) ([]string, error)
	DomainSummary(ctx context.Context, domain string) (*backend.Summary, error)
}

// Tools carries the dependencies shared by every tool operation.
type Tools struct {
	Cache   *cache.Cache[any]
	Fetcher *seo.Fetcher
	Backend Backend
	Worker  *workers.AuditWorker
	Q       *db.Queries
	Log     *zap.Logger
}

func New(c *cache.Cache[any], f *seo.Fetcher, b Backend, w *workers.AuditWorker, q *db.Queries, log *zap.Logger) *Tools {
	return &Tools{
		Cache:   c,
		Fetcher: f,
		Backend: b,
		Worker:  w,
		Q:       q,
		Log:     log,
	}
}

// Descriptor describes one callable tool to the host.
type Descriptor struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Args        map[string]string `json:"args"`
}

type toolDef struct {
	desc    Descriptor
	handler func(echo.Context) error
}

func (t *Tools) registry() []toolDef {
	return []toolDef{
		{
			desc: Descriptor{
				Name:        "resolve_route",
				Description: "Map a source file path to its logical site URL, optionally reconciled against the domain's known pages.",
				Args:        map[string]string{"file_path": "required", "framework": "optional: nextjs|astro|remix|generic", "domain": "optional"},
			},
			handler: t.resolveRoute,
		},
		{
			desc: Descriptor{
				Name:        "analyze_meta",
				Description: "Fetch a page and score its metadata: title, description, headings, image alt coverage.",
				Args:        map[string]string{"domain": "required", "path": "required, starts with /"},
			},
			handler: t.analyzeMeta,
		},
		{
			desc: Descriptor{
				Name:        "generate_schema",
				Description: "Build a JSON-LD template (WebPage, Article or FAQPage) from a page's extracted facts.",
				Args:        map[string]string{"domain": "required", "path": "required, starts with /", "type": "optional: WebPage|Article|FAQPage"},
			},
			handler: t.generateSchema,
		},
		{
			desc: Descriptor{
				Name:        "site_context",
				Description: "Analytics rollup for a domain from the backend: traffic, top pages, bounce rate.",
				Args:        map[string]string{"domain": "required"},
			},
			handler: t.siteContext,
		},
		{
			desc: Descriptor{
				Name:        "scan_report",
				Description: "Full report for a changed file: resolved route, matched site URL and metadata analysis.",
				Args:        map[string]string{"domain": "required", "file_path": "required", "framework": "optional"},
			},
			handler: t.scanReport,
		},
		{
			desc: Descriptor{
				Name:        "invalidate_domain",
				Description: "Drop every cached analysis for a domain, forcing fresh fetches on the next call.",
				Args:        map[string]string{"domain": "required"},
			},
			handler: t.invalidateDomain,
		},
	}
}

// GET /api/v1/tools
func (t *Tools) List(c echo.Context) error {
	defs := t.registry()
	descs := make([]Descriptor, 0, len(defs))
	for _, d := range defs {
		descs = append(descs, d.desc)
	}
	return helpers.JSONSuccess(c, http.StatusOK, map[string]any{"tools": descs}, "")
}

// POST /api/v1/tools/:name
func (t *Tools) Call(c echo.Context) error {
	name := c.Param("name")
	for _, d := range t.registry() {
		if d.desc.Name == name {
			return d.handler(c)
		}
	}
	return helpers.JSONError(c, http.StatusNotFound, "unknown tool")
}

// pageURL builds the canonical fetch URL for a domain-relative path.
func pageURL(domain, path string) string {
	return "https://" + domain + path
}
