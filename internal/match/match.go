// Package match provides answer comparison helpers.
package match

import (
	"sort"
	"strings"
)

// EqualNames compares two names ignoring leading/trailing whitespace
// and collapsing internal whitespace runs to single spaces.
func EqualNames(a, b string) bool {
	return normalizeName(a) == normalizeName(b)
}

// EqualUnordered compares two lists as multisets: same length and the
// same elements with the same multiplicity, order ignored. Elements are
// compared case-sensitively with no normalization.
func EqualUnordered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
