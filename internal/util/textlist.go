package util

import "strings"

// MakeTextList joins items into an Oxford-comma list ("a, b, and c"), used
// for rendering the expected-terminal set in a SyntaxError. Adapted
// directly from the teacher's util.MakeTextList (internal/util/util.go).
func MakeTextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		out := make([]string, len(items))
		copy(out, items)
		out[len(out)-1] = "and " + out[len(out)-1]
		return strings.Join(out, ", ")
	}
}
