package version

import (
	"cmp"
	"slices"
	"strconv"
)

// segment is one "."- or "-"-delimited part of a version string.
type segment struct {
	num     int64
	numeric bool
}

func split(v string) []segment {
	parts := splitKeepEmpty(v)
	segs := make([]segment, len(parts))
	for i, p := range parts {
		if n, err := strconv.ParseInt(p, 10, 64); err == nil {
			segs[i] = segment{num: n, numeric: true}
		}
	}
	return segs
}

// splitKeepEmpty splits at every '.' and '-', keeping empty parts so that
// "1..2" has three segments.
func splitKeepEmpty(v string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] == '.' || v[i] == '-' {
			parts = append(parts, v[start:i])
			start = i + 1
		}
	}
	return append(parts, v[start:])
}

// Compare orders two version strings and returns -1, 0 or 1.
//
// Segments are compared numerically while both sides are numeric. A textual
// segment on either side ends the walk and the result is decided by segment
// count, the same rule that breaks ties when all compared segments are equal.
func Compare(a, b string) int {
	as, bs := split(a), split(b)
	byCount := cmp.Compare(len(as), len(bs))
	for i := range min(len(as), len(bs)) {
		x, y := as[i], bs[i]
		if !x.numeric || !y.numeric {
			return byCount
		}
		if c := cmp.Compare(x.num, y.num); c != 0 {
			return c
		}
	}
	return byCount
}

// SortDescending sorts versions newest first in place.
// Versions that compare equal keep their relative order.
func SortDescending(versions []string) {
	slices.SortStableFunc(versions, func(a, b string) int { return Compare(b, a) })
}
