package seo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoscope/seo"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Fresh Roasted Coffee Beans | Example Shop</title>
	<meta name="description" content="Order single-origin coffee beans roasted to order and shipped within 24 hours.">
	<meta property="og:title" content="Fresh Roasted Coffee Beans">
	<link rel="canonical" href="https://example.com/coffee">
	<script type="application/ld+json">{"@type":"WebPage"}</script>
</head>
<body>
	<h1>Fresh Roasted Coffee</h1>
	<img src="/beans.jpg" alt="coffee beans">
	<img src="/bag.jpg">
</body>
</html>`

func TestParsePage(t *testing.T) {
	p, err := seo.ParsePage(strings.NewReader(sampleHTML), "https://example.com/coffee")
	require.NoError(t, err)

	assert.Equal(t, "Fresh Roasted Coffee Beans | Example Shop", p.Title)
	assert.Equal(t, "Order single-origin coffee beans roasted to order and shipped within 24 hours.", p.Description)
	assert.Equal(t, "https://example.com/coffee", p.Canonical)
	assert.Equal(t, []string{"Fresh Roasted Coffee"}, p.H1s)
	assert.Equal(t, 2, p.ImageCount)
	assert.Equal(t, 1, p.ImagesNoAlt)
	assert.True(t, p.HasOpenGraph)
	assert.True(t, p.HasJSONLD)
}

func TestParsePage_Sparse(t *testing.T) {
	p, err := seo.ParsePage(strings.NewReader("<html><body><p>hello</p></body></html>"), "https://example.com/")
	require.NoError(t, err)

	assert.Empty(t, p.Title)
	assert.Empty(t, p.Description)
	assert.Empty(t, p.H1s)
	assert.False(t, p.HasOpenGraph)
}

func TestAnalyze_WellFormedPage(t *testing.T) {
	p, err := seo.ParsePage(strings.NewReader(sampleHTML), "https://example.com/coffee")
	require.NoError(t, err)

	r := seo.Analyze(p)
	// only deduction is the image missing alt text
	assert.Equal(t, 90, r.Score)
	assert.Len(t, r.Issues, 1)
	assert.Contains(t, r.Issues[0], "missing alt")
}

func TestAnalyze_EmptyPage(t *testing.T) {
	r := seo.Analyze(&seo.Page{URL: "https://example.com/"})

	assert.Less(t, r.Score, 50)
	assert.NotEmpty(t, r.Issues)
	assert.Equal(t, len(r.Issues), len(r.Recommendations))
}

func TestGenerateSchema(t *testing.T) {
	p := &seo.Page{URL: "https://example.com/post", Title: "A Post", Description: "About things."}

	doc, err := seo.GenerateSchema(p, "")
	require.NoError(t, err)
	assert.Equal(t, "WebPage", doc["@type"])
	assert.Equal(t, "https://schema.org", doc["@context"])
	assert.Equal(t, "A Post", doc["name"])

	doc, err = seo.GenerateSchema(p, seo.SchemaArticle)
	require.NoError(t, err)
	assert.Equal(t, "Article", doc["@type"])
	assert.Equal(t, "A Post", doc["headline"])

	_, err = seo.GenerateSchema(p, "Recipe")
	assert.Error(t, err)
}
