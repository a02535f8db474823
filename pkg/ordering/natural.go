package ordering

import (
	"slices"
	"strings"
)

func sortNatural(ids []string) {
	slices.SortStableFunc(ids, compareNatural)
}

// compareNatural compares strings chunk by chunk, where digit runs compare
// by numeric value and everything else byte-wise. Leading zeros only break
// ties between strings that are otherwise equal, shorter padding first.
func compareNatural(a, b string) int {
	padding := 0
	for a != "" && b != "" {
		ca, ra := chunk(a)
		cb, rb := chunk(b)
		if c := compareChunk(ca, cb); c != 0 {
			return c
		}
		if padding == 0 {
			padding = len(ca) - len(cb)
		}
		a, b = ra, rb
	}
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return padding
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func chunk(s string) (head, rest string) {
	digits := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

func compareChunk(a, b string) int {
	if isDigit(a[0]) && isDigit(b[0]) {
		ta := strings.TrimLeft(a, "0")
		tb := strings.TrimLeft(b, "0")
		if len(ta) != len(tb) {
			return len(ta) - len(tb)
		}
		return strings.Compare(ta, tb)
	}
	return strings.Compare(a, b)
}
