package tools

import (
	"context"
	"fmt"

	"seoscope/cache"
	"seoscope/seo"
)

// cachedAnalysis returns the memoized metadata report for (domain, path),
// fetching and analyzing the page at most once per TTL window regardless of
// how many tool calls ask for it concurrently.
// Returns (report, cacheHit, error).
func (t *Tools) cachedAnalysis(ctx context.Context, domain, path string) (*seo.MetaReport, bool, error) {
	key := cache.Key("meta", domain, path)
	hit := t.Cache.Has(key)

	v, err := t.Cache.GetOrSet(ctx, key, 0, func(ctx context.Context) (any, error) {
		page, _, err := t.Fetcher.Fetch(ctx, pageURL(domain, path))
		if err != nil {
			return nil, err
		}
		return seo.Analyze(page), nil
	})
	if err != nil {
		return nil, hit, err
	}

	report, ok := v.(*seo.MetaReport)
	if !ok {
		return nil, hit, fmt.Errorf("unexpected cache payload for %s", key)
	}
	return report, hit, nil
}

// cachedSiteURLs returns the memoized list of the domain's registered URLs.
func (t *Tools) cachedSiteURLs(ctx context.Context, domain string) ([]string, bool, error) {
	key := cache.Key("urls", domain)
	hit := t.Cache.Has(key)

	v, err := t.Cache.GetOrSet(ctx, key, 0, func(ctx context.Context) (any, error) {
		return t.Backend.SiteURLs(ctx, domain)
	})
	if err != nil {
		return nil, hit, err
	}

	urls, ok := v.([]string)
	if !ok {
		return nil, hit, fmt.Errorf("unexpected cache payload for %s", key)
	}
	return urls, hit, nil
}
