package username

import "strings"

// Normalize trims surrounding whitespace and strips leading "@"s from an
// Instagram handle. The result is a fixpoint: applying Normalize twice gives
// the same result as once.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "@")
	return strings.TrimSpace(s)
}
