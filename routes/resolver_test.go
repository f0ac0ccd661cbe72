package routes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoscope/routes"
)

func TestResolve_NextJSAppRouter(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		want     string
	}{
		{"static page", "/project/app/about/page.tsx", "/about"},
		{"dynamic segment", "/project/app/blog/[slug]/page.tsx", "/blog/:slug"},
		{"catch-all before single bracket", "/project/app/docs/[...path]/page.tsx", "/docs/*"},
		{"root page", "/project/app/page.tsx", "/"},
		{"layout file", "/project/app/shop/layout.tsx", "/shop"},
		{"route handler", "/project/app/api/feed/route.ts", "/api/feed"},
		{"nested dynamic", "/project/app/shop/[category]/[item]/page.jsx", "/shop/:category/:item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := routes.Resolve(tt.filePath, "")
			require.True(t, ok)
			assert.Equal(t, tt.want, got.URLPath)
			assert.Equal(t, routes.ConfidenceHigh, got.Confidence)
			assert.NotEmpty(t, got.Reasoning)
		})
	}
}

func TestResolve_NextJSPagesRouter(t *testing.T) {
	tests := []struct {
		filePath string
		want     string
	}{
		{"/project/pages/index.tsx", "/"},
		{"/project/pages/about.tsx", "/about"},
		{"/project/pages/blog/[slug].tsx", "/blog/:slug"},
		{"/project/pages/docs/[...path].tsx", "/docs/*"},
		{"/project/pages/blog/index.jsx", "/blog"},
	}

	for _, tt := range tests {
		got, ok := routes.Resolve(tt.filePath, "")
		require.True(t, ok, tt.filePath)
		assert.Equal(t, tt.want, got.URLPath, tt.filePath)
		assert.Equal(t, routes.ConfidenceHigh, got.Confidence)
	}
}

func TestResolve_Astro(t *testing.T) {
	tests := []struct {
		filePath string
		want     string
	}{
		{"/site/src/pages/index.astro", "/"},
		{"/site/src/pages/contact.astro", "/contact"},
		{"/site/src/pages/blog/[slug].astro", "/blog/:slug"},
	}

	for _, tt := range tests {
		got, ok := routes.Resolve(tt.filePath, "")
		require.True(t, ok, tt.filePath)
		assert.Equal(t, tt.want, got.URLPath, tt.filePath)
		assert.Equal(t, routes.ConfidenceHigh, got.Confidence)
	}
}

func TestResolve_Remix(t *testing.T) {
	tests := []struct {
		filePath string
		want     string
	}{
		// $ must be rewritten before dots become slashes
		{"/app-dir/routes/blog.$slug.tsx", "/blog/:slug"},
		{"/app-dir/routes/index.tsx", "/"},
		{"/app-dir/routes/about.tsx", "/about"},
		{"/app-dir/routes/shop.$category.$item.tsx", "/shop/:category/:item"},
	}

	for _, tt := range tests {
		got, ok := routes.Resolve(tt.filePath, "remix")
		require.True(t, ok, tt.filePath)
		assert.Equal(t, tt.want, got.URLPath, tt.filePath)
		assert.Equal(t, routes.ConfidenceHigh, got.Confidence)
	}
}

func TestResolve_GenericFallback(t *testing.T) {
	got, ok := routes.Resolve("/static/contact-us.html", "")
	require.True(t, ok)
	assert.Equal(t, "/static/contact-us", got.URLPath)
	assert.Equal(t, routes.ConfidenceLow, got.Confidence)

	got, ok = routes.Resolve("/docs/readme.MD", "")
	require.True(t, ok)
	assert.Equal(t, "/docs/readme", got.URLPath)
}

func TestResolve_Unmatched(t *testing.T) {
	_, ok := routes.Resolve("/weird/file.unknown", "")
	assert.False(t, ok)

	// uppercase in the captured portion disqualifies the generic rule
	_, ok = routes.Resolve("/Static/Contact.html", "")
	assert.False(t, ok)

	// framework hint that never matches the path
	_, ok = routes.Resolve("/project/lib/util.ts", "nextjs")
	assert.False(t, ok)
}

func TestDetectFramework(t *testing.T) {
	assert.Equal(t, routes.FrameworkNextJS, routes.DetectFramework("/p/app/page.tsx"))
	assert.Equal(t, routes.FrameworkAstro, routes.DetectFramework("/p/src/pages/x.astro"))
	assert.Equal(t, routes.FrameworkRemix, routes.DetectFramework("/p/routes/x.tsx"))
	assert.Equal(t, routes.FrameworkGeneric, routes.DetectFramework("/p/static/x.html"))

	// /pages/ resolves to nextjs even for non-Next.js trees; accepted
	// approximation, kept on purpose
	assert.Equal(t, routes.FrameworkNextJS, routes.DetectFramework("/plain-site/pages/about.html"))
}
