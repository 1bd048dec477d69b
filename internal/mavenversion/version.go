// Package mavenversion implements the Maven version-comparison algorithm:
// tokenize on '.'/'-', compare numeric tokens numerically, compare
// qualifier tokens against the known ordering
// alpha < beta < milestone < rc < snapshot < (empty|ga|final) < sp.
package mavenversion

import (
	"strconv"
	"strings"
)

// Compare returns -1, 0, or 1 as a orders before, the same as, or after b.
// A missing (empty) version sorts lower than any present version.
func Compare(a, b string) int {
	a = normalize(a)
	b = normalize(b)
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	ta := tokenize(a)
	tb := tokenize(b)
	n := len(ta)
	if len(tb) > n {
		n = len(tb)
	}
	for i := 0; i < n; i++ {
		var x, y string
		if i < len(ta) {
			x = ta[i]
		}
		if i < len(tb) {
			y = tb[i]
		}
		if c := compareToken(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// IsHigherThan is the strict form Compare(a,b) > 0.
func IsHigherThan(a, b string) bool {
	return Compare(a, b) > 0
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// tokenize splits a normalized version string on '.' and '-' into a flat
// token list, per the spec's tokenization rule.
func tokenize(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
}

func isNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// compareToken compares one tokenized position from each version. The slot
// is treated as numeric unless either side carries an actual (non-empty)
// qualifier token, in which case both sides compare as qualifiers (a
// missing side counts as the empty qualifier, i.e. "ga").
func compareToken(x, y string) int {
	xQual := x != "" && !isNumeric(x)
	yQual := y != "" && !isNumeric(y)

	if xQual || yQual {
		return compareQualifier(x, y)
	}
	return compareNumeric(x, y)
}

func compareNumeric(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	if x == y {
		return 0
	}
	if x < y {
		return -1
	}
	return 1
}

// qualifierRank orders the known qualifiers per the spec; unknown
// qualifiers sort after "sp" and compare lexically among each other.
func qualifierRank(q string) int {
	switch q {
	case "alpha", "a":
		return 0
	case "beta", "b":
		return 1
	case "milestone", "m":
		return 2
	case "rc", "cr":
		return 3
	case "snapshot":
		return 4
	case "", "ga", "final", "release":
		return 5
	case "sp":
		return 6
	default:
		return 7
	}
}

func compareQualifier(x, y string) int {
	rx, ry := qualifierRank(x), qualifierRank(y)
	if rx != ry {
		return rx - ry
	}
	if rx != 7 {
		return 0
	}
	return strings.Compare(x, y)
}

// IsRange reports whether s is a Maven version-range expression, e.g.
// "[1.0,2.0)", "(,1.0]", or the exact-pin form "[1.0]".
func IsRange(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "[") || strings.HasPrefix(s, "(")
}

// RangeContains reports whether v falls inside the single-interval Maven
// range rng. Comma-separated unions of multiple intervals are not
// supported: the whole expression is read as one interval from its first
// bracket to its last, which gives no meaningful answer for a union.
func RangeContains(rng, v string) bool {
	rng = strings.TrimSpace(rng)
	if !IsRange(rng) {
		return false
	}
	incLow := strings.HasPrefix(rng, "[")
	incHigh := strings.HasSuffix(rng, "]")
	inner := strings.TrimPrefix(rng, "[")
	inner = strings.TrimPrefix(inner, "(")
	inner = strings.TrimSuffix(inner, "]")
	inner = strings.TrimSuffix(inner, ")")

	parts := strings.SplitN(inner, ",", 2)
	low := strings.TrimSpace(parts[0])
	high := ""
	if len(parts) == 2 {
		high = strings.TrimSpace(parts[1])
	} else {
		// "[1.0]" form: exact pin.
		return Compare(v, low) == 0
	}

	if low != "" {
		c := Compare(v, low)
		if c < 0 || (c == 0 && !incLow) {
			return false
		}
	}
	if high != "" {
		c := Compare(v, high)
		if c > 0 || (c == 0 && !incHigh) {
			return false
		}
	}
	return true
}

// ParseInt is a small helper used by callers that need a version segment
// as an integer (e.g. major-version gating); it returns 0 if tok isn't
// purely numeric.
func ParseInt(tok string) int {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0
	}
	return n
}
