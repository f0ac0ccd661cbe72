package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seoscope/backend"
)

func TestSiteURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/domains/example.com/urls", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"urls":["/","/about","/blog/post"]}`))
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL, 2*time.Second, zap.NewNop())

	urls, err := c.SiteURLs(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/about", "/blog/post"}, urls)
}

func TestDomainSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/domains/example.com/summary", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"domain":"example.com","page_views":1200,"visitors":340,"bounce_rate":0.42,"top_pages":[{"path":"/","views":800}],"period_days":30}`))
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL, 2*time.Second, zap.NewNop())

	s, err := c.DomainSummary(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), s.PageViews)
	assert.Len(t, s.TopPages, 1)
	assert.Equal(t, "/", s.TopPages[0].Path)
}

func TestRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"urls":[]}`))
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL, 2*time.Second, zap.NewNop())

	_, err := c.SiteURLs(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClientErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL, 2*time.Second, zap.NewNop())

	_, err := c.SiteURLs(context.Background(), "unknown.example")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
