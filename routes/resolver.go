// Package routes infers a site's logical URL path from the on-disk location
// of a source file, across the routing conventions of a few common web
// frameworks.
package routes

import (
	"regexp"
	"strings"
)

// Confidence expresses how sure the resolver is about a mapping.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Framework names accepted as hints and produced by detection.
const (
	FrameworkNextJS  = "nextjs"
	FrameworkAstro   = "astro"
	FrameworkRemix   = "remix"
	FrameworkGeneric = "generic"
)

// ResolvedRoute is the outcome of a successful resolution. It carries the
// logical URL path plus a human-readable note on which rule fired.
type ResolvedRoute struct {
	URLPath    string     `json:"url_path"`
	Confidence Confidence `json:"confidence"`
	Reasoning  string     `json:"reasoning"`
}

// A rewrite is one ordered token substitution applied to the captured path
// segments. Order matters: the catch-all bracket form must be rewritten
// before the single-bracket form, since [...name] also matches [name]'s
// pattern; likewise Remix's $ markers must be rewritten before its dots.
type rewrite struct {
	pattern *regexp.Regexp
	repl    string
}

// convention is one framework's file-system-to-URL mapping: a matcher that
// captures the route-relevant portion of the file path, plus the ordered
// rewrites to turn that capture into a URL path.
type convention struct {
	framework  string
	name       string
	match      *regexp.Regexp
	rewrites   []rewrite
	confidence Confidence
}

var (
	catchAllSeg = rewrite{regexp.MustCompile(`\[\.\.\.[^\]]+\]`), "*"}
	dynamicSeg  = rewrite{regexp.MustCompile(`\[([^\]]+)\]`), ":$1"}
	remixParam  = rewrite{regexp.MustCompile(`\$`), ":"}
	remixDot    = rewrite{regexp.MustCompile(`\.`), "/"}
)

// conventions is scanned in order for the detected framework. New frameworks
// are supported by adding a row, not by branching.
var conventions = []convention{
	{
		framework:  FrameworkNextJS,
		name:       "nextjs-app",
		match:      regexp.MustCompile(`/app/(?:(.*?)/)?(?:page|layout|route)\.(?:tsx?|jsx?)$`),
		rewrites:   []rewrite{catchAllSeg, dynamicSeg},
		confidence: ConfidenceHigh,
	},
	{
		framework:  FrameworkAstro,
		name:       "astro",
		match:      regexp.MustCompile(`/src/pages/(.*?)\.astro$`),
		rewrites:   []rewrite{catchAllSeg, dynamicSeg},
		confidence: ConfidenceHigh,
	},
	{
		framework:  FrameworkNextJS,
		name:       "nextjs-pages",
		match:      regexp.MustCompile(`/pages/(.*?)\.(?:tsx?|jsx?)$`),
		rewrites:   []rewrite{catchAllSeg, dynamicSeg},
		confidence: ConfidenceHigh,
	},
	{
		framework:  FrameworkRemix,
		name:       "remix",
		match:      regexp.MustCompile(`/routes/(.*?)\.(?:tsx?|jsx?)$`),
		rewrites:   []rewrite{remixParam, remixDot},
		confidence: ConfidenceHigh,
	},
	{
		framework:  FrameworkGeneric,
		name:       "generic",
		match:      regexp.MustCompile(`^([a-z0-9/_-]+)\.(?i:html?|php|md)$`),
		rewrites:   nil,
		confidence: ConfidenceLow,
	},
}

// DetectFramework guesses the framework from directory names in the path.
// `/pages/` alone is ambiguous between Next.js Pages Router and a plain site
// with a pages directory; it resolves to nextjs on purpose, and downstream
// consumers rely on that precedence.
func DetectFramework(filePath string) string {
	switch {
	case strings.Contains(filePath, "/app/"):
		return FrameworkNextJS
	case strings.Contains(filePath, "/src/pages/"):
		return FrameworkAstro
	case strings.Contains(filePath, "/pages/"):
		return FrameworkNextJS
	case strings.Contains(filePath, "/routes/"):
		return FrameworkRemix
	default:
		return FrameworkGeneric
	}
}

// Resolve maps a source file path to its logical URL path. An empty framework
// triggers detection. The second return is false when no convention for the
// framework matched; that is an expected outcome, not an error.
func Resolve(filePath, framework string) (ResolvedRoute, bool) {
	if framework == "" {
		framework = DetectFramework(filePath)
	}

	for _, conv := range conventions {
		if conv.framework != framework {
			continue
		}
		m := conv.match.FindStringSubmatch(filePath)
		if m == nil {
			continue
		}

		segs := m[1]
		for _, rw := range conv.rewrites {
			segs = rw.pattern.ReplaceAllString(segs, rw.repl)
		}

		urlPath := "/" + strings.Trim(segs, "/")
		urlPath = strings.TrimSuffix(urlPath, "/index")
		if urlPath == "" {
			urlPath = "/"
		}

		return ResolvedRoute{
			URLPath:    urlPath,
			Confidence: conv.confidence,
			Reasoning:  "matched " + conv.name + " convention",
		}, true
	}

	return ResolvedRoute{}, false
}
