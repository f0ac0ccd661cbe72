// Package seo fetches pages and extracts the on-page facts the tool
// operations report on: title, meta description, headings, image alt
// coverage.
package seo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

const docCacheSize = 256

// Fetcher retrieves and parses pages. A small LRU of parsed documents sits
// in front of the network; the longer-lived memoization of full analyses is
// the TTL cache owned by the tool layer.
type Fetcher struct {
	client *http.Client
	docs   *lru.Cache
	log    *zap.Logger
}

func NewFetcher(timeout time.Duration, log *zap.Logger) (*Fetcher, error) {
	docs, err := lru.New(docCacheSize)
	if err != nil {
		return nil, err
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		docs:   docs,
		log:    log,
	}, nil
}

// Fetch returns the parsed page for url, from the document cache or the
// network. Returns (page, cacheHit, error).
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, bool, error) {
	if v, ok := f.docs.Get(url); ok {
		if p, ok := v.(*Page); ok {
			return p, true, nil
		}
		f.docs.Remove(url) // type mismatch — evict
	}

	var page *Page
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("User-Agent", "seoscope/1.0")

			resp, err := f.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(fmt.Errorf("fetch %s: status %d", url, resp.StatusCode))
			}

			p, err := ParsePage(resp.Body, url)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			page = p
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.log.Warn("retrying page fetch", zap.Uint("attempt", n+1), zap.String("url", url), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, false, err
	}

	f.docs.Add(url, page)
	return page, false, nil
}
