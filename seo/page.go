package seo

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Page holds the on-page facts extracted from one fetched document.
type Page struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Canonical       string   `json:"canonical"`
	H1s             []string `json:"h1s"`
	ImageCount      int      `json:"image_count"`
	ImagesNoAlt     int      `json:"images_missing_alt"`
	HasOpenGraph    bool     `json:"has_open_graph"`
	HasJSONLD       bool     `json:"has_json_ld"`
}

// ParsePage extracts Page facts from an HTML document.
func ParsePage(r io.Reader, url string) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	p := &Page{URL: url}
	walk(doc, p)
	return p, nil
}

func walk(n *html.Node, p *Page) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if p.Title == "" {
				p.Title = strings.TrimSpace(textContent(n))
			}
		case "meta":
			name := attr(n, "name")
			prop := attr(n, "property")
			if name == "description" && p.Description == "" {
				p.Description = strings.TrimSpace(attr(n, "content"))
			}
			if strings.HasPrefix(prop, "og:") {
				p.HasOpenGraph = true
			}
		case "link":
			if attr(n, "rel") == "canonical" && p.Canonical == "" {
				p.Canonical = attr(n, "href")
			}
		case "h1":
			p.H1s = append(p.H1s, strings.TrimSpace(textContent(n)))
		case "img":
			p.ImageCount++
			if strings.TrimSpace(attr(n, "alt")) == "" {
				p.ImagesNoAlt++
			}
		case "script":
			if attr(n, "type") == "application/ld+json" {
				p.HasJSONLD = true
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, p)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		} else {
			b.WriteString(textContent(c))
		}
	}
	return b.String()
}
