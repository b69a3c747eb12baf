package version

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// tokenPattern matches a version token: digits, a dot, digits, then an
// optional tail of dot-separated alphanumerics, "+" and "-".
var tokenPattern = regexp.MustCompile(`[0-9]+\.[0-9]+\.*[0-9]*[0-9a-zA-Z+\.-]*`)

// Extract returns the first version token found in s, such as "1.2.3" in
// the link target "1.2.3/". It reports false when s holds no version.
func Extract(s string) (string, bool) {
	v := tokenPattern.FindString(s)
	return v, v != ""
}

// Tokens returns the bucket keys for v: its major token and its major.minor
// token. A version without a minor part is placed in minor line "0".
func Tokens(v string) (major, majorMinor string) {
	parts := strings.SplitN(v, ".", 3)
	minor := "0"
	if len(parts) > 1 {
		minor = parts[1]
	}
	return parts[0], parts[0] + "." + minor
}

// Index maps major and major.minor tokens to the versions that begin with
// them, newest first. The zero value is an empty index.
type Index map[string][]string

// NewIndex buckets versions by major and major.minor token and sorts every
// bucket with [SortDescending]. Exact duplicates are dropped; the first
// occurrence decides the discovery order.
func NewIndex(versions []string) Index {
	idx := make(Index)
	seen := make(map[string]bool, len(versions))
	for _, v := range versions {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		major, majorMinor := Tokens(v)
		idx[major] = append(idx[major], v)
		idx[majorMinor] = append(idx[majorMinor], v)
	}
	for _, bucket := range idx {
		SortDescending(bucket)
	}
	return idx
}

// Bucket returns the versions of a major ("2") or major.minor ("2.4") line,
// newest first, or nil when none were published.
func (idx Index) Bucket(key string) []string {
	return idx[key]
}

// Latest returns the newest version of a major or major.minor line.
func (idx Index) Latest(key string) (string, bool) {
	if b := idx[key]; len(b) > 0 {
		return b[0], true
	}
	return "", false
}

// Majors returns the numeric major tokens sorted by ascending numeric value.
func (idx Index) Majors() []string {
	type major struct {
		key string
		n   int
	}
	var majors []major
	for key := range idx {
		if strings.Contains(key, ".") {
			continue
		}
		if n, err := strconv.Atoi(key); err == nil {
			majors = append(majors, major{key, n})
		}
	}
	slices.SortFunc(majors, func(a, b major) int {
		return cmp.Or(cmp.Compare(a.n, b.n), strings.Compare(a.key, b.key))
	})
	keys := make([]string, len(majors))
	for i, m := range majors {
		keys[i] = m.key
	}
	return keys
}

// Len returns the number of distinct versions in the index.
func (idx Index) Len() int {
	n := 0
	for key, bucket := range idx {
		if !strings.Contains(key, ".") {
			n += len(bucket)
		}
	}
	return n
}
