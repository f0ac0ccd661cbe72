package seo

import "fmt"

// Supported JSON-LD template types.
const (
	SchemaWebPage = "WebPage"
	SchemaArticle = "Article"
	SchemaFAQ     = "FAQPage"
)

// GenerateSchema assembles a JSON-LD template for the page. The output is a
// starting point the site author fills in, not a finished markup block.
func GenerateSchema(p *Page, schemaType string) (map[string]any, error) {
	doc := map[string]any{
		"@context": "https://schema.org",
		"url":      p.URL,
	}
	if p.Title != "" {
		doc["name"] = p.Title
	}
	if p.Description != "" {
		doc["description"] = p.Description
	}

	switch schemaType {
	case "", SchemaWebPage:
		doc["@type"] = SchemaWebPage
	case SchemaArticle:
		doc["@type"] = SchemaArticle
		if p.Title != "" {
			doc["headline"] = p.Title
		}
		doc["author"] = map[string]any{"@type": "Person", "name": "TODO"}
		doc["datePublished"] = "TODO"
	case SchemaFAQ:
		doc["@type"] = SchemaFAQ
		doc["mainEntity"] = []any{}
	default:
		return nil, fmt.Errorf("unsupported schema type %q", schemaType)
	}

	return doc, nil
}
