// Package backend talks to the remote analytics service that knows each
// domain's registered URLs and traffic summary.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
)

// Summary is the backend's per-domain analytics rollup.
type Summary struct {
	Domain      string  `json:"domain"`
	PageViews   int64   `json:"page_views"`
	Visitors    int64   `json:"visitors"`
	BounceRate  float64 `json:"bounce_rate"`
	TopPages    []Page  `json:"top_pages"`
	PeriodsDays int     `json:"period_days"`
}

type Page struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Client is the HTTP client for the analytics backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SiteURLs returns the domain's registered URL paths, used to reconcile
// resolved routes against pages the backend actually tracks.
func (c *Client) SiteURLs(ctx context.Context, domain string) ([]string, error) {
	var out struct {
		URLs []string `json:"urls"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/domains/%s/urls", url.PathEscape(domain)), &out); err != nil {
		return nil, err
	}
	return out.URLs, nil
}

// DomainSummary returns the analytics rollup for a domain.
func (c *Client) DomainSummary(ctx context.Context, domain string) (*Summary, error) {
	var out Summary
	if err := c.getJSON(ctx, fmt.Sprintf("/api/domains/%s/summary", url.PathEscape(domain)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	endpoint := c.baseURL + path

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Accept", "application/json")

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("backend %s: status %d", path, resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("backend %s: status %d", path, resp.StatusCode))
			}

			if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
				return retry.Unrecoverable(fmt.Errorf("backend %s: decode: %w", path, err))
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(150*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("retrying backend call", zap.Uint("attempt", n+1), zap.String("path", path), zap.Error(err))
		}),
	)
}
