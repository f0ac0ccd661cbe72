package cache

import (
	"fmt"
	"strings"
)

// Key joins the non-empty, non-nil parts with ":" into a deterministic cache
// key. Identical parts always produce the same key, which is what makes
// memoization via GetOrSet correct.
func Key(parts ...any) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			continue
		}
		s := fmt.Sprint(p)
		if s == "" {
			continue
		}
		segs = append(segs, s)
	}
	return strings.Join(segs, ":")
}
