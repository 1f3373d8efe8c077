// Package strings holds small string helpers shared by config and request parsing.
package strings

import (
	"strings"
)

// SplitList splits s on sep, trims each item and drops blanks and repeats.
// Order of first appearance is kept. An empty input yields an empty, non-nil slice.
//
//	SplitList(" k1:9092, k2:9092,,k1:9092", ",") // []string{"k1:9092", "k2:9092"}
func SplitList(s, sep string) []string {
	parts := strings.Split(s, sep)
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
