package routes

import "strings"

// FindMatch reconciles a candidate URL path against a closed list of known
// site URLs. Strategy, first hit wins:
//
//  1. exact equality
//  2. equality modulo a trailing slash (both directions)
//  3. substring containment, in list order
//
// Containment is intentionally loose ("/a" matches "/apple"); callers that
// need precision should pre-filter the list to segment-bounded candidates.
func FindMatch(urlPath string, availableURLs []string) (string, bool) {
	for _, u := range availableURLs {
		if u == urlPath {
			return u, true
		}
	}

	withSlash := urlPath + "/"
	withoutSlash := strings.TrimSuffix(urlPath, "/")
	for _, u := range availableURLs {
		if u == withSlash || u == withoutSlash {
			return u, true
		}
	}

	for _, u := range availableURLs {
		if strings.Contains(urlPath, u) || strings.Contains(u, urlPath) {
			return u, true
		}
	}

	return "", false
}
