package seo

import "fmt"

// MetaReport is the scored outcome of analyzing one page's metadata.
type MetaReport struct {
	Page            *Page    `json:"page"`
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

const (
	titleMin, titleMax = 30, 60
	descMin, descMax   = 50, 160
)

// Analyze scores a page's metadata and collects issues with concrete
// recommendations. Starts at 100 and deducts per finding.
func Analyze(p *Page) *MetaReport {
	r := &MetaReport{Page: p, Score: 100}

	switch {
	case p.Title == "":
		r.fail(25, "missing <title>", "add a unique, descriptive title of 30-60 characters")
	case len(p.Title) < titleMin:
		r.fail(10, fmt.Sprintf("title too short (%d chars)", len(p.Title)),
			"expand the title toward 30-60 characters with primary keywords")
	case len(p.Title) > titleMax:
		r.fail(10, fmt.Sprintf("title too long (%d chars)", len(p.Title)),
			"shorten the title below 60 characters so it is not truncated in results")
	}

	switch {
	case p.Description == "":
		r.fail(20, "missing meta description", "add a meta description of 50-160 characters")
	case len(p.Description) < descMin:
		r.fail(10, fmt.Sprintf("meta description too short (%d chars)", len(p.Description)),
			"expand the description toward 50-160 characters")
	case len(p.Description) > descMax:
		r.fail(5, fmt.Sprintf("meta description too long (%d chars)", len(p.Description)),
			"trim the description below 160 characters")
	}

	switch len(p.H1s) {
	case 0:
		r.fail(15, "no <h1> heading", "add exactly one h1 that states the page topic")
	case 1:
		// fine
	default:
		r.fail(10, fmt.Sprintf("%d <h1> headings", len(p.H1s)), "keep a single h1 per page")
	}

	if p.ImagesNoAlt > 0 {
		r.fail(10, fmt.Sprintf("%d of %d images missing alt text", p.ImagesNoAlt, p.ImageCount),
			"add descriptive alt attributes to every meaningful image")
	}

	if p.Canonical == "" {
		r.fail(5, "missing canonical link", "add <link rel=\"canonical\"> to consolidate signals")
	}
	if !p.HasOpenGraph {
		r.fail(5, "no Open Graph tags", "add og:title, og:description and og:image for link previews")
	}
	if !p.HasJSONLD {
		r.fail(5, "no structured data", "embed JSON-LD describing the page type")
	}

	if r.Score < 0 {
		r.Score = 0
	}
	return r
}

func (r *MetaReport) fail(penalty int, issue, recommendation string) {
	r.Score -= penalty
	r.Issues = append(r.Issues, issue)
	r.Recommendations = append(r.Recommendations, recommendation)
}
