// Package natural orders strings the way people read file names:
// "level2.json" before "level10.json".
//
// Each string is split into runs of ASCII digits and single non-digit
// bytes. Digit runs compare by numeric value, other bytes by byte value
// (which for UTF-8 text is code point order), and a digit run against a
// non-digit byte compares by its first digit. When one string runs out of
// tokens first it sorts first.
//
// Strings whose tokens are all equal but whose text differs, such as
// "a01" and "a1", are ordered by plain byte comparison of the raw text.
// Compare therefore returns 0 only for identical strings and is a strict
// total order, safe for any sort.
package natural

import (
	"slices"
	"strings"
)

// Compare returns -1 if a sorts before b, +1 if after, and 0 if a == b.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ei := digitEnd(a, i)
			ej := digitEnd(b, j)
			if c := compareDigits(a[i:ei], b[j:ej]); c != 0 {
				return c
			}
			i, j = ei, ej
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts strictly before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts names in place in natural order.
func Sort(names []string) {
	slices.SortFunc(names, Compare)
}

// SortFunc sorts s in place by the natural order of key(e).
func SortFunc[E any](s []E, key func(E) string) {
	slices.SortFunc(s, func(a, b E) int { return Compare(key(a), key(b)) })
}

// Sorted returns a naturally ordered copy of names.
func Sorted(names []string) []string {
	out := slices.Clone(names)
	Sort(out)
	return out
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digitEnd(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// compareDigits compares two digit runs by value. Runs may be arbitrarily
// long, so they are compared as text after dropping leading zeros.
func compareDigits(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}
